package services

import "github.com/dennysis/Social-Media-Feed-Backend/models"

// RequireAuthenticated возвращает ErrUnauthenticated для анонимного запроса.
func RequireAuthenticated(p *models.Principal) error {
	if p == nil {
		return ErrUnauthenticated
	}
	return nil
}

// RequireOwner проверяет, что ресурс с автором authorID принадлежит p.
func RequireOwner(authorID int64, p *models.Principal) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if authorID != p.ID {
		return ErrForbidden
	}
	return nil
}
