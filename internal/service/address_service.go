package service

import (
	"database/sql"
	"errors"

	"github.com/oakhaus/oakhaus-api/internal/models"
	"github.com/oakhaus/oakhaus-api/internal/repository"
	"github.com/oakhaus/oakhaus-api/internal/utils"
)

// AddressService manages a user's shipping address book.
type AddressService struct {
	addresses *repository.AddressRepository
}

func NewAddressService(addresses *repository.AddressRepository) *AddressService {
	return &AddressService{addresses: addresses}
}

func (s *AddressService) GetByUser(userID int) ([]models.Address, error) {
	return s.addresses.GetByUser(userID)
}

func (s *AddressService) Create(addr *models.Address) error {
	return s.addresses.Create(addr)
}

func (s *AddressService) Update(addr *models.Address) error {
	if _, err := s.addresses.GetByID(addr.ID, addr.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrAddressNotFound
		}
		return err
	}
	return s.addresses.Update(addr)
}

func (s *AddressService) Delete(id, userID int) error {
	if _, err := s.addresses.GetByID(id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrAddressNotFound
		}
		return err
	}
	return s.addresses.Delete(id, userID)
}
