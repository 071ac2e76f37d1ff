package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"guest-checkin/models"

	"gorm.io/gorm"
)

var (
	ErrEmptyFilter = errors.New("guest filter has no criteria")
	ErrDuplicate   = errors.New("duplicate key")
)

// GuestFilter is an AND of every non-zero field.
type GuestFilter struct {
	CustomID   string
	InternalID uint

	// case-insensitive literal substring of email
	EmailContains string
	// case-insensitive, anchored
	EmailEquals string
	// exact, compared against the normalized stored value
	Phone string
	// case-insensitive, anchored
	NameEquals string
}

func (f GuestFilter) IsEmpty() bool {
	return f.CustomID == "" && f.InternalID == 0 && f.EmailContains == "" &&
		f.EmailEquals == "" && f.Phone == "" && f.NameEquals == ""
}

// GuestPatch only writes the fields that are set. UpdatedAt is always written.
type GuestPatch struct {
	Name   *string
	Email  *string
	Phone  *string
	Gender *string
	Age    *string
	Source *string

	IsCheckedIn *bool
	CheckedInAt *time.Time

	UpdatedAt time.Time
}

func (p GuestPatch) columns() map[string]interface{} {
	cols := map[string]interface{}{"updated_at": p.UpdatedAt}
	set := func(col string, v *string) {
		if v != nil {
			cols[col] = *v
		}
	}
	set("name", p.Name)
	set("email", p.Email)
	if p.Name != nil {
		cols["name_lower"] = models.Fold(*p.Name)
	}
	if p.Email != nil {
		cols["email_lower"] = models.Fold(*p.Email)
	}
	set("phone", p.Phone)
	set("gender", p.Gender)
	set("age", p.Age)
	set("source", p.Source)
	if p.IsCheckedIn != nil {
		cols["is_checked_in"] = *p.IsCheckedIn
	}
	if p.CheckedInAt != nil {
		cols["checked_in_at"] = *p.CheckedInAt
	}
	return cols
}

// GuestRepository is the document-store contract the check-in logic consumes.
type GuestRepository interface {
	FindOne(ctx context.Context, filter GuestFilter) (*models.Guest, error)
	InsertOne(ctx context.Context, guest *models.Guest) (uint, error)
	InsertMany(ctx context.Context, guests []models.Guest) (int, error)
	UpdateOne(ctx context.Context, filter GuestFilter, patch GuestPatch) (int64, error)
	DeleteOne(ctx context.Context, filter GuestFilter) (int64, error)
	FindAll(ctx context.Context) ([]models.Guest, error)
}

type gormGuestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) GuestRepository {
	return &gormGuestRepository{db: db}
}

// FindOne returns (nil, nil) when nothing matches.
func (r *gormGuestRepository) FindOne(ctx context.Context, filter GuestFilter) (*models.Guest, error) {
	q, err := r.scope(ctx, filter)
	if err != nil {
		return nil, err
	}

	var guest models.Guest
	err = q.Order("id ASC").Limit(1).Take(&guest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *gormGuestRepository) InsertOne(ctx context.Context, guest *models.Guest) (uint, error) {
	if err := r.db.WithContext(ctx).Create(guest).Error; err != nil {
		return 0, translate(err)
	}
	return guest.ID, nil
}

// InsertMany is all-or-nothing: the rows go in inside one transaction.
func (r *gormGuestRepository) InsertMany(ctx context.Context, guests []models.Guest) (int, error) {
	if len(guests) == 0 {
		return 0, nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&guests, 200).Error
	})
	if err != nil {
		return 0, translate(err)
	}
	return len(guests), nil
}

func (r *gormGuestRepository) UpdateOne(ctx context.Context, filter GuestFilter, patch GuestPatch) (int64, error) {
	if filter.CustomID == "" && filter.InternalID == 0 {
		return 0, errors.New("update requires an id filter")
	}
	q, err := r.scope(ctx, filter)
	if err != nil {
		return 0, err
	}
	res := q.Updates(patch.columns())
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *gormGuestRepository) DeleteOne(ctx context.Context, filter GuestFilter) (int64, error) {
	if filter.CustomID == "" && filter.InternalID == 0 {
		return 0, errors.New("delete requires an id filter")
	}
	q, err := r.scope(ctx, filter)
	if err != nil {
		return 0, err
	}
	res := q.Delete(&models.Guest{})
	return res.RowsAffected, res.Error
}

func (r *gormGuestRepository) FindAll(ctx context.Context) ([]models.Guest, error) {
	var guests []models.Guest
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&guests).Error; err != nil {
		return nil, err
	}
	return guests, nil
}

func (r *gormGuestRepository) scope(ctx context.Context, f GuestFilter) (*gorm.DB, error) {
	if f.IsEmpty() {
		return nil, ErrEmptyFilter
	}

	q := r.db.WithContext(ctx).Model(&models.Guest{})
	if f.CustomID != "" {
		q = q.Where("custom_id = ?", f.CustomID)
	}
	if f.InternalID != 0 {
		q = q.Where("id = ?", f.InternalID)
	}
	if f.EmailContains != "" {
		// literal match, LIKE would treat % and _ in the token as wildcards
		q = q.Where(r.containsExpr("email_lower"), strings.ToLower(f.EmailContains))
	}
	if f.EmailEquals != "" {
		q = q.Where("email_lower = ?", models.Fold(f.EmailEquals))
	}
	if f.Phone != "" {
		q = q.Where("phone = ?", f.Phone)
	}
	if f.NameEquals != "" {
		q = q.Where("name_lower = ?", models.Fold(f.NameEquals))
	}
	return q, nil
}

func (r *gormGuestRepository) containsExpr(col string) string {
	if r.db.Dialector.Name() == "postgres" {
		return "STRPOS(" + col + ", ?) > 0"
	}
	return "INSTR(" + col + ", ?) > 0"
}
