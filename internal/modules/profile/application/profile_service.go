package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	authdomain "github.com/anuragc10/academiapro/internal/modules/auth/domain"
	fileapp "github.com/anuragc10/academiapro/internal/modules/filestorage/application"
	"github.com/anuragc10/academiapro/internal/shared/utils"
)

const (
	profileImageFolder = "profile_images"
	// Uploaded images are normalised to fit this bounding box.
	maxImageDimension = 512
)

var ErrUnsupportedImage = errors.New("unsupported image format")

// ProfileService lets a user read and edit their own account record and
// replace their profile image.
type ProfileService struct {
	repo  authdomain.UserRepository
	files *fileapp.FileService
}

func NewProfileService(repo authdomain.UserRepository, files *fileapp.FileService) *ProfileService {
	return &ProfileService{repo: repo, files: files}
}

// Get returns the user's own profile.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*authdomain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// Update applies the non-nil fields of req to the user record and returns
// the updated profile. A new password is bcrypt-hashed before storage.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*authdomain.User, error) {
	if req.Email != nil && !utils.IsValidEmail(*req.Email) {
		return nil, errors.New("invalid email format")
	}

	var passwordHash *string
	if req.Password != nil {
		if len(*req.Password) < 8 {
			return nil, errors.New("password must be at least 8 characters")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h := string(hashed)
		passwordHash = &h
	}

	if err := s.repo.UpdateProfile(ctx, userID, req.Name, req.Email, req.Department, req.RollNo, req.EmpID, passwordHash); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, userID)
}

// UploadImage decodes and resizes the uploaded image, stores it, saves the
// URL on the user record and deletes the previous image if there was one.
// Returns the public URL of the stored image.
func (s *ProfileService) UploadImage(ctx context.Context, userID uuid.UUID, file io.Reader, filename, contentType string) (string, error) {
	if !isSupportedImage(filename, contentType) {
		return "", ErrUnsupportedImage
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	img = imaging.Fit(img, maxImageDimension, maxImageDimension, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return "", err
	}

	url, _, err := s.files.Upload(ctx, &buf, strings.TrimSuffix(filename, extOf(filename))+".jpg", "image/jpeg", profileImageFolder)
	if err != nil {
		return "", err
	}

	if err := s.repo.UpdateProfileImage(ctx, userID, url); err != nil {
		return "", err
	}

	// Best-effort cleanup of the replaced image.
	if user.ProfileImage != nil && *user.ProfileImage != "" {
		if key, err := s.files.GetKeyFromURL(*user.ProfileImage); err == nil {
			if err := s.files.Delete(ctx, key); err != nil {
				log.Printf("UploadImage: failed to delete old image %s: %v", key, err)
			}
		}
	}

	return url, nil
}

func isSupportedImage(filename, contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png":
		return true
	}
	switch strings.ToLower(extOf(filename)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

func extOf(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[i:]
	}
	return ""
}
