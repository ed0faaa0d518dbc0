package kv

import (
	"github.com/campuslink-dev/campuslink/internal/domain"
	apperrors "github.com/campuslink-dev/campuslink/internal/errors"
)

func (s *Storage) CreatePost(p *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := loadSlice[domain.Post](s, keyPosts)
	if err != nil {
		return err
	}
	posts = append(posts, *p)
	return s.save(keyPosts, posts)
}

func (s *Storage) GetPost(id string) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := loadSlice[domain.Post](s, keyPosts)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].Id == id {
			return &posts[i], nil
		}
	}
	return nil, apperrors.NotFound("Post not found")
}

func (s *Storage) GetPosts() ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return loadSlice[domain.Post](s, keyPosts)
}

func (s *Storage) GetPostsByStatus(status domain.PostStatus) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := loadSlice[domain.Post](s, keyPosts)
	if err != nil {
		return nil, err
	}
	matching := []domain.Post{}
	for _, p := range posts {
		if p.Status == status {
			matching = append(matching, p)
		}
	}
	return matching, nil
}

func (s *Storage) UpdatePost(p *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := loadSlice[domain.Post](s, keyPosts)
	if err != nil {
		return err
	}
	for i := range posts {
		if posts[i].Id == p.Id {
			posts[i] = *p
			return s.save(keyPosts, posts)
		}
	}
	return apperrors.NotFound("Post not found")
}
