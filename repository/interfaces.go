package repository

import "github.com/camden-git/albumlayout/models"

// AlbumRepositoryInterface defines the methods of the persistence
// collaborator: a saved album must round-trip through the schema normalizer
// without semantic loss.
type AlbumRepositoryInterface interface {
	Create(album *models.Album) error
	Save(album *models.Album) error
	Load(albumID string) (*models.Album, error)
	ListAll() ([]models.AlbumRow, error)
	Delete(albumID string) error
}
