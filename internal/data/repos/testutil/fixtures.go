package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/simsportal/sims-portal-backend/internal/domain"
)

func SeedNationalSociety(tb testing.TB, ctx context.Context, tx *gorm.DB, goID int, country, iso3 string) *domain.NationalSociety {
	tb.Helper()
	ns := &domain.NationalSociety{
		NSGoID:      goID,
		NSName:      country + " Red Cross",
		CountryName: country,
		ISO3:        iso3,
	}
	if err := tx.WithContext(ctx).Create(ns).Error; err != nil {
		tb.Fatalf("seed national society: %v", err)
	}
	return ns
}

func SeedEmergencyType(tb testing.TB, ctx context.Context, tx *gorm.DB, goID int, name string) *domain.EmergencyType {
	tb.Helper()
	et := &domain.EmergencyType{EmergencyTypeGoID: goID, EmergencyTypeName: name}
	if err := tx.WithContext(ctx).Create(et).Error; err != nil {
		tb.Fatalf("seed emergency type: %v", err)
	}
	return et
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, first, last string, nsGoID int) *domain.User {
	tb.Helper()
	u := &domain.User{
		FirstName: first,
		LastName:  last,
		Email:     fmt.Sprintf("%s.%s.%d@example.org", first, last, time.Now().UnixNano()),
		NSID:      nsGoID,
		Status:    domain.UserActive,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedAdmin(tb testing.TB, ctx context.Context, tx *gorm.DB, first, last string) *domain.User {
	tb.Helper()
	u := SeedUser(tb, ctx, tx, first, last, 0)
	if err := tx.WithContext(ctx).Model(u).Update("is_admin", true).Error; err != nil {
		tb.Fatalf("seed admin: %v", err)
	}
	u.IsAdmin = true
	return u
}

func SeedEmergency(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, status domain.EmergencyStatus, locationGoID, typeGoID int) *domain.Emergency {
	tb.Helper()
	e := &domain.Emergency{
		EmergencyName:       name,
		EmergencyStatus:     status,
		EmergencyLocationID: locationGoID,
		EmergencyTypeID:     typeGoID,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed emergency: %v", err)
	}
	return e
}

func SeedAssignment(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, emergencyID uint, role domain.Role, status domain.AssignmentStatus) *domain.Assignment {
	tb.Helper()
	start := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	a := &domain.Assignment{
		UserID:           userID,
		EmergencyID:      emergencyID,
		Role:             role,
		AssignmentStatus: status,
		StartDate:        datatypes.Date(start),
		EndDate:          datatypes.Date(start.AddDate(0, 0, 30)),
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed assignment: %v", err)
	}
	return a
}

func SeedAvailability(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, emergencyID uint, timeframe, dates string, createdAt time.Time) *domain.Availability {
	tb.Helper()
	a := &domain.Availability{
		UserID:      userID,
		EmergencyID: emergencyID,
		Timeframe:   timeframe,
		Dates:       dates,
		CreatedAt:   createdAt,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed availability: %v", err)
	}
	return a
}

// SeedLearning creates a survey where every score field is set to score.
func SeedLearning(tb testing.TB, ctx context.Context, tx *gorm.DB, assignmentID, userID uint, score int) *domain.Learning {
	tb.Helper()
	l := &domain.Learning{
		AssignmentID:       assignmentID,
		UserID:             userID,
		OverallScore:       score,
		GotSupport:         score,
		InternalResource:   score,
		ExternalResource:   score,
		ClearTasks:         score,
		FieldCommunication: score,
		ClearDeadlines:     score,
		CoordinationTools:  score,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed learning: %v", err)
	}
	return l
}

func SeedPortfolio(tb testing.TB, ctx context.Context, tx *gorm.DB, emergencyID, creatorID uint, title string, status domain.ProductStatus) *domain.Portfolio {
	tb.Helper()
	p := &domain.Portfolio{
		Title:         title,
		Type:          "Map",
		EmergencyID:   emergencyID,
		CreatorID:     creatorID,
		ProductStatus: status,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed portfolio: %v", err)
	}
	return p
}

func SeedReview(tb testing.TB, ctx context.Context, tx *gorm.DB, emergencyID uint, title string) *domain.Review {
	tb.Helper()
	r := &domain.Review{EmergencyID: emergencyID, Title: title, Category: "Coordination", Status: "Open"}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed review: %v", err)
	}
	return r
}

func SeedStory(tb testing.TB, ctx context.Context, tx *gorm.DB, emergencyID uint) *domain.Story {
	tb.Helper()
	s := &domain.Story{EmergencyID: emergencyID, Header: "Operation overview", Entry: "..."}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed story: %v", err)
	}
	return s
}
