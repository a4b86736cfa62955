// Package graph - GraphQL-интерфейс поверх тех же сервисов, что использует REST.
package graph

import (
	"context"
	"strconv"
	"time"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/middleware"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/services"
	"github.com/dennysis/Social-Media-Feed-Backend/models"
	"github.com/graphql-go/graphql"
)

// Services - набор сервисов, которые вызывают резолверы.
type Services struct {
	Auth     services.AuthService
	Users    services.UserService
	Posts    services.PostService
	Likes    services.LikeService
	Follows  services.FollowService
	Comments services.CommentService
}

type resolver struct {
	svc Services
}

// resolveFn оборачивает резолвер, переводя ошибки сервисов в Error с кодом.
func resolveFn(fn func(p graphql.ResolveParams) (interface{}, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		v, err := fn(p)
		if err != nil {
			return nil, wrapError(err)
		}
		return v, nil
	}
}

func principal(ctx context.Context) *models.Principal {
	return middleware.GetPrincipalFromContext(ctx)
}

func idArg(p graphql.ResolveParams, name string) (int64, error) {
	raw, _ := p.Args[name].(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, services.ErrInvalidID
	}
	return id, nil
}

func stringArg(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func asUser(src interface{}) *models.User {
	switch v := src.(type) {
	case *models.User:
		return v
	case models.User:
		return &v
	}
	return nil
}

func asPost(src interface{}) *models.Post {
	switch v := src.(type) {
	case *models.Post:
		return v
	case models.Post:
		return &v
	}
	return nil
}

func asLike(src interface{}) *models.Like {
	switch v := src.(type) {
	case *models.Like:
		return v
	case models.Like:
		return &v
	}
	return nil
}

func asFollow(src interface{}) *models.Follow {
	switch v := src.(type) {
	case *models.Follow:
		return v
	case models.Follow:
		return &v
	}
	return nil
}

func asComment(src interface{}) *models.Comment {
	switch v := src.(type) {
	case *models.Comment:
		return v
	case models.Comment:
		return &v
	}
	return nil
}

// NewSchema собирает GraphQL-схему.
func NewSchema(svc Services) (graphql.Schema, error) {
	r := &resolver{svc: svc}

	var postType, commentType *graphql.Object

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return formatID(asUser(p.Source).ID), nil
				},
			},
			"username": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return asUser(p.Source).Username, nil
				},
			},
			"email": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return asUser(p.Source).Email, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return formatTime(asUser(p.Source).CreatedAt), nil
				},
			},
		},
	})

	likeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Like",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id": &graphql.Field{
					Type: graphql.NewNonNull(graphql.ID),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return formatID(asLike(p.Source).ID), nil
					},
				},
				"post": &graphql.Field{
					Type: graphql.NewNonNull(postType),
					Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
						return r.svc.Posts.Get(p.Context, asLike(p.Source).PostID)
					}),
				},
				"user": &graphql.Field{
					Type: graphql.NewNonNull(userType),
					Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
						return r.svc.Users.GetUser(p.Context, asLike(p.Source).UserID)
					}),
				},
				"createdAt": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return formatTime(asLike(p.Source).CreatedAt), nil
					},
				},
			}
		}),
	})

	postType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id": &graphql.Field{
					Type: graphql.NewNonNull(graphql.ID),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return formatID(asPost(p.Source).ID), nil
					},
				},
				"content": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return asPost(p.Source).Content, nil
					},
				},
				"imageUrl": &graphql.Field{
					Type: graphql.String,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						if url := asPost(p.Source).ImageURL; url != nil {
							return *url, nil
						}
						return nil, nil
					},
				},
				"author": &graphql.Field{
					Type: graphql.NewNonNull(userType),
					Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
						post := asPost(p.Source)
						if post.Author != nil {
							return post.Author, nil
						}
						return r.svc.Users.GetUser(p.Context, post.AuthorID)
					}),
				},
				"likes": &graphql.Field{
					Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(likeType))),
					Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
						post := asPost(p.Source)
						if post.Likes != nil {
							return post.Likes, nil
						}
						return r.svc.Likes.ListByPost(p.Context, post.ID)
					}),
				},
				"comments": &graphql.Field{
					Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(commentType))),
					Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
						return r.svc.Comments.ListByPost(p.Context, asPost(p.Source).ID)
					}),
				},
				"createdAt": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return formatTime(asPost(p.Source).CreatedAt), nil
					},
				},
				"updatedAt": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return formatTime(asPost(p.Source).UpdatedAt), nil
					},
				},
			}
		}),
	})

	commentType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Comment",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id": &graphql.Field{
					Type: graphql.NewNonNull(graphql.ID),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return formatID(asComment(p.Source).ID), nil
					},
				},
				"content": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return asComment(p.Source).Content, nil
					},
				},
				"post": &graphql.Field{
					Type: graphql.NewNonNull(postType),
					Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
						return r.svc.Posts.Get(p.Context, asComment(p.Source).PostID)
					}),
				},
				"author": &graphql.Field{
					Type: graphql.NewNonNull(userType),
					Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
						comment := asComment(p.Source)
						if comment.Author != nil {
							return comment.Author, nil
						}
						return r.svc.Users.GetUser(p.Context, comment.AuthorID)
					}),
				},
				"createdAt": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return formatTime(asComment(p.Source).CreatedAt), nil
					},
				},
				"updatedAt": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return formatTime(asComment(p.Source).UpdatedAt), nil
					},
				},
			}
		}),
	})

	followType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Follow",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return formatID(asFollow(p.Source).ID), nil
				},
			},
			"follower": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					return r.svc.Users.GetUser(p.Context, asFollow(p.Source).FollowerID)
				}),
			},
			"following": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					return r.svc.Users.GetUser(p.Context, asFollow(p.Source).FollowingID)
				}),
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return formatTime(asFollow(p.Source).CreatedAt), nil
				},
			},
		},
	})

	authPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.AuthResponse).Token, nil
				},
			},
			"user": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.AuthResponse).User, nil
				},
			},
		},
	})

	passwordResetType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PasswordResetResponse",
		Fields: graphql.Fields{
			"success": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	t := types{
		user:          userType,
		post:          postType,
		like:          likeType,
		follow:        followType,
		comment:       commentType,
		authPayload:   authPayloadType,
		passwordReset: passwordResetType,
	}

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    r.queryType(t),
		Mutation: r.mutationType(t),
	})
}

type types struct {
	user, post, like, follow, comment, authPayload, passwordReset *graphql.Object
}

func nonNullList(t graphql.Type) graphql.Output {
	return graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t)))
}

func idArgs(names ...string) graphql.FieldConfigArgument {
	args := graphql.FieldConfigArgument{}
	for _, name := range names {
		args[name] = &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}
	}
	return args
}

func (r *resolver) queryType(t types) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type: t.user,
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					pr := principal(p.Context)
					if err := services.RequireAuthenticated(pr); err != nil {
						return nil, err
					}
					return r.svc.Users.GetUser(p.Context, pr.ID)
				}),
			},
			"user": &graphql.Field{
				Type: t.user,
				Args: idArgs("id"),
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := idArg(p, "id")
					if err != nil {
						return nil, err
					}
					return r.svc.Users.GetUser(p.Context, id)
				}),
			},
			"posts": &graphql.Field{
				Type: nonNullList(t.post),
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					return r.svc.Posts.List(p.Context)
				}),
			},
			"post": &graphql.Field{
				Type: t.post,
				Args: idArgs("id"),
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := idArg(p, "id")
					if err != nil {
						return nil, err
					}
					return r.svc.Posts.Get(p.Context, id)
				}),
			},
			"commentsByPost": &graphql.Field{
				Type: nonNullList(t.comment),
				Args: idArgs("postId"),
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := idArg(p, "postId")
					if err != nil {
						return nil, err
					}
					return r.svc.Comments.ListByPost(p.Context, id)
				}),
			},
			"comment": &graphql.Field{
				Type: t.comment,
				Args: idArgs("id"),
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := idArg(p, "id")
					if err != nil {
						return nil, err
					}
					return r.svc.Comments.Get(p.Context, id)
				}),
			},
			"followers": &graphql.Field{
				Type: nonNullList(t.user),
				Args: idArgs("userId"),
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := idArg(p, "userId")
					if err != nil {
						return nil, err
					}
					return r.svc.Follows.Followers(p.Context, id)
				}),
			},
			"following": &graphql.Field{
				Type: nonNullList(t.user),
				Args: idArgs("userId"),
				Resolve: resolveFn(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := idArg(p, "userId")
					if err != nil {
						return nil, err
					}
					return r.svc.Follows.Following(p.Context, id)
				}),
			},
		},
	})
}
