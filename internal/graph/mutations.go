package graph

import (
	"github.com/dennysis/Social-Media-Feed-Backend/internal/services"
	"github.com/dennysis/Social-Media-Feed-Backend/models"
	"github.com/graphql-go/graphql"
)

const (
	msgResetRequested = "Если email зарегистрирован, на него придет ссылка для сброса пароля"
	msgPasswordReset  = "Пароль успешно изменен"
)

func stringArgs(names ...string) graphql.FieldConfigArgument {
	args := graphql.FieldConfigArgument{}
	for _, name := range names {
		args[name] = &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)}
	}
	return args
}

func mergeArgs(sets ...graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	args := graphql.FieldConfigArgument{}
	for _, set := range sets {
		for name, arg := range set {
			args[name] = arg
		}
	}
	return args
}

func resetResponse(message string) map[string]interface{} {
	return map[string]interface{}{"success": true, "message": message}
}

func (r *resolver) mutationType(t types) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: graphql.NewNonNull(t.authPayload),
				Args: stringArgs("username", "email", "password"),
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					return r.svc.Auth.Register(p.Context, models.RegisterRequest{
						Username: stringArg(p, "username"),
						Email:    stringArg(p, "email"),
						Password: stringArg(p, "password"),
					})
				}),
			},
			"login": &graphql.Field{
				Type: graphql.NewNonNull(t.authPayload),
				Args: stringArgs("email", "password"),
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					return r.svc.Auth.Login(p.Context, models.LoginRequest{
						Email:    stringArg(p, "email"),
						Password: stringArg(p, "password"),
					})
				}),
			},
			"requestPasswordReset": &graphql.Field{
				Type: graphql.NewNonNull(t.passwordReset),
				Args: stringArgs("email"),
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					if err := r.svc.Auth.RequestPasswordReset(p.Context, stringArg(p, "email")); err != nil {
						return nil, err
					}
					return resetResponse(msgResetRequested), nil
				}),
			},
			"resetPassword": &graphql.Field{
				Type: graphql.NewNonNull(t.passwordReset),
				Args: stringArgs("token", "newPassword"),
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					if err := r.svc.Auth.ResetPassword(p.Context, stringArg(p, "token"), stringArg(p, "newPassword")); err != nil {
						return nil, err
					}
					return resetResponse(msgPasswordReset), nil
				}),
			},
			"createPost": &graphql.Field{
				Type: graphql.NewNonNull(t.post),
				Args: stringArgs("content"),
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					return r.svc.Posts.Create(p.Context, principal(p.Context), stringArg(p, "content"), nil)
				}),
			},
			"updatePost": &graphql.Field{
				Type: graphql.NewNonNull(t.post),
				Args: mergeArgs(idArgs("postId"), stringArgs("content")),
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					pr := principal(p.Context)
					if err := services.RequireAuthenticated(pr); err != nil {
						return nil, err
					}
					id, err := idArg(p, "postId")
					if err != nil {
						return nil, err
					}
					return r.svc.Posts.Update(p.Context, pr, id, stringArg(p, "content"), nil)
				}),
			},
			"deletePost": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: idArgs("postId"),
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					pr := principal(p.Context)
					if err := services.RequireAuthenticated(pr); err != nil {
						return nil, err
					}
					id, err := idArg(p, "postId")
					if err != nil {
						return nil, err
					}
					if err := r.svc.Posts.Delete(p.Context, pr, id); err != nil {
						return nil, err
					}
					return true, nil
				}),
			},
			"likePost": &graphql.Field{
				Type: graphql.NewNonNull(t.like),
				Args: idArgs("postId"),
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					pr := principal(p.Context)
					if err := services.RequireAuthenticated(pr); err != nil {
						return nil, err
					}
					id, err := idArg(p, "postId")
					if err != nil {
						return nil, err
					}
					return r.svc.Likes.Like(p.Context, pr, id)
				}),
			},
			"unlikePost": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: idArgs("postId"),
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					pr := principal(p.Context)
					if err := services.RequireAuthenticated(pr); err != nil {
						return nil, err
					}
					id, err := idArg(p, "postId")
					if err != nil {
						return nil, err
					}
					if err := r.svc.Likes.Unlike(p.Context, pr, id); err != nil {
						return nil, err
					}
					return true, nil
				}),
			},
			"followUser": &graphql.Field{
				Type: graphql.NewNonNull(t.follow),
				Args: idArgs("userId"),
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					pr := principal(p.Context)
					if err := services.RequireAuthenticated(pr); err != nil {
						return nil, err
					}
					id, err := idArg(p, "userId")
					if err != nil {
						return nil, err
					}
					return r.svc.Follows.Follow(p.Context, pr, id)
				}),
			},
			"unfollowUser": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: idArgs("userId"),
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					pr := principal(p.Context)
					if err := services.RequireAuthenticated(pr); err != nil {
						return nil, err
					}
					id, err := idArg(p, "userId")
					if err != nil {
						return nil, err
					}
					if err := r.svc.Follows.Unfollow(p.Context, pr, id); err != nil {
						return nil, err
					}
					return true, nil
				}),
			},
			"createComment": &graphql.Field{
				Type: graphql.NewNonNull(t.comment),
				Args: mergeArgs(idArgs("postId"), stringArgs("content")),
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					pr := principal(p.Context)
					if err := services.RequireAuthenticated(pr); err != nil {
						return nil, err
					}
					id, err := idArg(p, "postId")
					if err != nil {
						return nil, err
					}
					return r.svc.Comments.Create(p.Context, pr, id, stringArg(p, "content"))
				}),
			},
			"updateComment": &graphql.Field{
				Type: graphql.NewNonNull(t.comment),
				Args: mergeArgs(idArgs("id"), stringArgs("content")),
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					pr := principal(p.Context)
					if err := services.RequireAuthenticated(pr); err != nil {
						return nil, err
					}
					id, err := idArg(p, "id")
					if err != nil {
						return nil, err
					}
					return r.svc.Comments.Update(p.Context, pr, id, stringArg(p, "content"))
				}),
			},
			"deleteComment": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: idArgs("id"),
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					pr := principal(p.Context)
					if err := services.RequireAuthenticated(pr); err != nil {
						return nil, err
					}
					id, err := idArg(p, "id")
					if err != nil {
						return nil, err
					}
					if err := r.svc.Comments.Delete(p.Context, pr, id); err != nil {
						return nil, err
					}
					return true, nil
				}),
			},
		},
	})
}
