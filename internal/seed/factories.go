// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"accesshub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts, nextID: 1000}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Role:     models.RoleEmployee,
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s (%s)", user.Username, user.Role)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateSoftware constructs and persists a catalog entry with the default
// tier set.
func (f *Factory) CreateSoftware(overrides ...func(*models.Software)) (*models.Software, error) {
	software := &models.Software{
		Name:         fmt.Sprintf("%s %s", gofakeit.AppName(), gofakeit.LetterN(4)),
		Description:  gofakeit.Sentence(8),
		AccessLevels: models.DefaultTiers(),
	}

	for _, override := range overrides {
		override(software)
	}

	if f.opts.DryRun {
		f.nextID++
		software.ID = f.nextID
		log.Printf("[dry-run] CreateSoftware: %s", software.Name)
		return software, nil
	}

	if err := f.db.Create(software).Error; err != nil {
		return nil, err
	}
	return software, nil
}

// CreateRequest persists an access request for the given user and software.
// The created_at spread makes seeded histories look lived-in.
func (f *Factory) CreateRequest(user *models.User, software *models.Software, tier models.AccessTier, status models.RequestStatus, overrides ...func(*models.AccessRequest)) (*models.AccessRequest, error) {
	request := &models.AccessRequest{
		UserID:     user.ID,
		SoftwareID: software.ID,
		AccessType: tier,
		Reason:     gofakeit.Sentence(10),
		Status:     status,
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	// #nosec G404: acceptable for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	daysBack := r.Intn(maxDays)
	hoursBack := r.Intn(24)
	request.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(request)
	}

	if f.opts.DryRun {
		f.nextID++
		request.ID = f.nextID
		log.Printf("[dry-run] CreateRequest: user=%d software=%d %s/%s", request.UserID, request.SoftwareID, request.AccessType, request.Status)
		return request, nil
	}

	if err := f.db.Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}
