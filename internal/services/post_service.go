package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/dennysis/Social-Media-Feed-Backend/internal/repository"
	"github.com/dennysis/Social-Media-Feed-Backend/internal/storage"
	"github.com/dennysis/Social-Media-Feed-Backend/models"
)

// MaxImageSize - максимальный размер изображения поста (5 МБ).
const MaxImageSize = 5 << 20

// PostService управляет постами и их изображениями.
type PostService interface {
	List(ctx context.Context) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, p *models.Principal, content string, image *models.Upload) (*models.Post, error)
	// Update меняет текст и/или изображение. Пустой content оставляет текст прежним.
	Update(ctx context.Context, p *models.Principal, id int64, content string, image *models.Upload) (*models.Post, error)
	Delete(ctx context.Context, p *models.Principal, id int64) error
}

var _ PostService = (*postService)(nil)

type postService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	likeRepo repository.LikeRepository
	files    storage.FileStorage
	tasks    TaskRunner
}

// NewPostService создает сервис постов.
func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	likeRepo repository.LikeRepository,
	files storage.FileStorage,
	tasks TaskRunner,
) PostService {
	return &postService{
		postRepo: postRepo,
		userRepo: userRepo,
		likeRepo: likeRepo,
		files:    files,
		tasks:    tasks,
	}
}

// List возвращает ленту: все посты с авторами и лайками, новые первыми.
func (s *postService) List(ctx context.Context) ([]models.Post, error) {
	posts, err := s.postRepo.ListPosts(ctx)
	if err != nil {
		log.Printf("[PostService] Ошибка получения ленты: %v", err)
		return nil, ErrInternal
	}
	if err = s.enrich(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *postService) ListByAuthor(ctx context.Context, authorID int64) ([]models.Post, error) {
	posts, err := s.postRepo.ListPostsByAuthor(ctx, authorID)
	if err != nil {
		log.Printf("[PostService] Ошибка получения постов пользователя %d: %v", authorID, err)
		return nil, ErrInternal
	}
	if err = s.enrich(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *postService) Get(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.getPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = s.enrichOne(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Create(
	ctx context.Context,
	p *models.Principal,
	content string,
	image *models.Upload,
) (*models.Post, error) {
	if err := RequireAuthenticated(p); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" && image == nil {
		return nil, ErrEmptyPost
	}
	if err := validateImage(image); err != nil {
		return nil, err
	}

	post := &models.Post{AuthorID: p.ID, Content: content}
	if image != nil {
		key, err := s.uploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
		post.ImageKey = &key
	}

	if _, err := s.postRepo.CreatePost(ctx, post); err != nil {
		log.Printf("[PostService] Ошибка создания поста пользователя %d: %v", p.ID, err)
		s.removeImage(ctx, post.ImageKey)
		return nil, ErrInternal
	}

	if err := s.enrichOne(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Update(
	ctx context.Context,
	p *models.Principal,
	id int64,
	content string,
	image *models.Upload,
) (*models.Post, error) {
	if err := RequireAuthenticated(p); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" && image == nil {
		return nil, ErrEmptyPost
	}
	if err := validateImage(image); err != nil {
		return nil, err
	}

	post, err := s.getPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = RequireOwner(post.AuthorID, p); err != nil {
		log.Printf("[PostService] Пользователь %d пытался изменить чужой пост %d", p.ID, id)
		return nil, err
	}

	oldKey := post.ImageKey
	if content != "" {
		post.Content = content
	}
	if image != nil {
		key, uploadErr := s.uploadImage(ctx, image)
		if uploadErr != nil {
			return nil, uploadErr
		}
		post.ImageKey = &key
	}

	if err = s.postRepo.UpdatePost(ctx, post); err != nil {
		if image != nil {
			s.removeImage(ctx, post.ImageKey)
		}
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		log.Printf("[PostService] Ошибка обновления поста %d: %v", id, err)
		return nil, ErrInternal
	}
	if image != nil {
		s.removeImage(ctx, oldKey)
	}

	if err = s.enrichOne(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Delete(ctx context.Context, p *models.Principal, id int64) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}

	post, err := s.getPost(ctx, id)
	if err != nil {
		return err
	}
	if err = RequireOwner(post.AuthorID, p); err != nil {
		log.Printf("[PostService] Пользователь %d пытался удалить чужой пост %d", p.ID, id)
		return err
	}

	if err = s.postRepo.DeletePost(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		log.Printf("[PostService] Ошибка удаления поста %d: %v", id, err)
		return ErrInternal
	}

	s.removeImage(ctx, post.ImageKey)
	return nil
}

func (s *postService) getPost(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.postRepo.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		log.Printf("[PostService] Ошибка получения поста %d: %v", id, err)
		return nil, ErrInternal
	}
	return post, nil
}

func validateImage(image *models.Upload) error {
	if image == nil {
		return nil
	}
	if !strings.HasPrefix(image.ContentType, "image/") {
		return ErrInvalidImage
	}
	if image.Size > MaxImageSize {
		return ErrImageTooLarge
	}
	return nil
}

func (s *postService) uploadImage(ctx context.Context, image *models.Upload) (string, error) {
	key := storage.NewPostImageKey(image.Filename)
	if err := s.files.UploadFile(ctx, key, image.Reader, image.Size, image.ContentType); err != nil {
		log.Printf("[PostService] Ошибка загрузки изображения: %v", err)
		return "", ErrInternal
	}
	return key, nil
}

// removeImage удаляет объект в фоне; ошибка удаления не влияет на ответ.
func (s *postService) removeImage(ctx context.Context, key *string) {
	if key == nil || *key == "" {
		return
	}
	objectKey := *key
	s.tasks.Go(ctx, "delete-image", func(taskCtx context.Context) error {
		err := s.files.DeleteFile(taskCtx, objectKey)
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil
		}
		return err
	})
}

func (s *postService) enrichOne(ctx context.Context, post *models.Post) error {
	posts := []models.Post{*post}
	if err := s.enrich(ctx, posts); err != nil {
		return err
	}
	*post = posts[0]
	return nil
}

// enrich подгружает авторов и лайки для набора постов двумя пакетными запросами.
func (s *postService) enrich(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	authorIDs := make([]int64, 0, len(posts))
	postIDs := make([]int64, 0, len(posts))
	for i := range posts {
		authorIDs = append(authorIDs, posts[i].AuthorID)
		postIDs = append(postIDs, posts[i].ID)
	}

	authors, err := loadUsers(ctx, s.userRepo, authorIDs)
	if err != nil {
		return err
	}

	likes, err := s.likeRepo.ListLikesByPostIDs(ctx, postIDs)
	if err != nil {
		log.Printf("[PostService] Ошибка загрузки лайков: %v", err)
		return ErrInternal
	}
	likesByPost := make(map[int64][]models.Like, len(posts))
	for _, like := range likes {
		likesByPost[like.PostID] = append(likesByPost[like.PostID], like)
	}

	for i := range posts {
		posts[i].Author = authors[posts[i].AuthorID]
		posts[i].Likes = likesByPost[posts[i].ID]
		if posts[i].Likes == nil {
			posts[i].Likes = []models.Like{}
		}
		if posts[i].ImageKey != nil {
			url := storage.PublicURL(*posts[i].ImageKey)
			posts[i].ImageURL = &url
		}
	}
	return nil
}
