package repository

import (
	"context"
	"errors"
	"strings"

	"hotel/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists records through GORM. The *gorm.DB should be opened
// with TranslateError enabled so duplicate keys surface as ErrDuplicate.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the rooms, users and bookings tables.
func (s *GormStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&models.Room{}, &models.User{}, &models.Booking{})
}

func (s *GormStore) Rooms() RoomRepository       { return gormRooms{s.db} }
func (s *GormStore) Users() UserRepository       { return gormUsers{s.db} }
func (s *GormStore) Bookings() BookingRepository { return gormBookings{s.db} }

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	// Drivers without an error translator still report unique violations in
	// the message.
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key") {
		return ErrDuplicate
	}
	return err
}

// lockRow adds SELECT ... FOR UPDATE on dialects that support it.
func lockRow(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

type gormRooms struct{ db *gorm.DB }

func (r gormRooms) scope(ctx context.Context, f RoomFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Room{})
	if f.ID != 0 {
		q = q.Where("id = ?", f.ID)
	}
	return q
}

func (r gormRooms) FindOne(ctx context.Context, f RoomFilter) (*models.Room, error) {
	if f.empty() {
		return nil, ErrNotFound
	}
	var room models.Room
	if err := r.scope(ctx, f).Order("id").First(&room).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (r gormRooms) FindMany(ctx context.Context, f RoomFilter) ([]models.Room, error) {
	var rooms []models.Room
	if err := r.scope(ctx, f).Order("id").Find(&rooms).Error; err != nil {
		return nil, translate(err)
	}
	return rooms, nil
}

func (r gormRooms) Create(ctx context.Context, room *models.Room) error {
	return translate(r.db.WithContext(ctx).Create(room).Error)
}

func (r gormRooms) Update(ctx context.Context, id uint64, patch models.RoomPatch) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRow(tx).First(&room, "id = ?", id).Error; err != nil {
			return err
		}
		updates := map[string]interface{}{}
		if patch.Type != nil {
			updates["type"] = *patch.Type
		}
		if patch.Price != nil {
			updates["price"] = *patch.Price
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&room).Updates(updates).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	patch.Apply(&room)
	return &room, nil
}

func (r gormRooms) Delete(ctx context.Context, id uint64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Room{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("room_id = ?", id).Delete(&models.Booking{}).Error
	})
	return translate(err)
}

type gormUsers struct{ db *gorm.DB }

func (r gormUsers) scope(ctx context.Context, f UserFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.User{})
	if f.ID != 0 {
		q = q.Where("id = ?", f.ID)
	}
	if f.Email != "" {
		q = q.Where("email = ?", f.Email)
	}
	return q
}

func (r gormUsers) FindOne(ctx context.Context, f UserFilter) (*models.User, error) {
	if f.empty() {
		return nil, ErrNotFound
	}
	var user models.User
	if err := r.scope(ctx, f).Order("id").First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r gormUsers) FindMany(ctx context.Context, f UserFilter) ([]models.User, error) {
	var users []models.User
	if err := r.scope(ctx, f).Order("id").Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (r gormUsers) Create(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

type gormBookings struct{ db *gorm.DB }

func (r gormBookings) scope(ctx context.Context, f BookingFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Booking{})
	if f.ID != 0 {
		q = q.Where("id = ?", f.ID)
	}
	if f.RoomID != 0 {
		q = q.Where("room_id = ?", f.RoomID)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	return q
}

func (r gormBookings) FindOne(ctx context.Context, f BookingFilter) (*models.Booking, error) {
	if f.empty() {
		return nil, ErrNotFound
	}
	var booking models.Booking
	if err := r.scope(ctx, f).Order("id").First(&booking).Error; err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

func (r gormBookings) FindMany(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.scope(ctx, f).Order("id").Find(&bookings).Error; err != nil {
		return nil, translate(err)
	}
	return bookings, nil
}

// Create locks the room row for the duration of the transaction so two
// overlapping inserts for the same room serialize on Postgres.
func (r gormBookings) Create(ctx context.Context, booking *models.Booking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := lockRow(tx).First(&room, "id = ?", booking.RoomID).Error; err != nil {
			return err
		}

		var overlapping int64
		err := tx.Model(&models.Booking{}).
			Where("room_id = ?", booking.RoomID).
			Where("start_date < ? AND end_date > ?", booking.EndDate, booking.StartDate).
			Count(&overlapping).Error
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return ErrConflict
		}
		return tx.Create(booking).Error
	})
	if errors.Is(err, ErrConflict) {
		return ErrConflict
	}
	return translate(err)
}

func (r gormBookings) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&models.Booking{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
