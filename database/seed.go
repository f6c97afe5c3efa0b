package database

import (
	"fmt"
	"log"

	"github.com/mrzkhrmn/EventCampusWebAPI/model"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("Starting database seeding...")

	// Run seeds in order (respecting foreign key constraints)
	if err := s.SeedUniversities(); err != nil {
		return fmt.Errorf("failed to seed universities: %w", err)
	}

	if err := s.SeedFaculties(); err != nil {
		return fmt.Errorf("failed to seed faculties: %w", err)
	}

	if err := s.SeedDepartments(); err != nil {
		return fmt.Errorf("failed to seed departments: %w", err)
	}

	if err := s.SeedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedUniversities creates the initial universities
func (s *Seeder) SeedUniversities() error {
	var count int64
	if err := s.db.Model(&model.University{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Universities already exist, skipping...")
		return nil
	}

	universities := []model.University{
		{Name: "Istanbul Technical University", ShortName: "ITU"},
		{Name: "Bogazici University", ShortName: "BOUN"},
		{Name: "Middle East Technical University", ShortName: "METU"},
		{Name: "Ege University", ShortName: "EGE"},
	}

	if err := s.db.Create(&universities).Error; err != nil {
		return err
	}

	log.Printf("Created %d universities\n", len(universities))
	return nil
}

// SeedFaculties creates faculties for every seeded university
func (s *Seeder) SeedFaculties() error {
	var count int64
	if err := s.db.Model(&model.Faculty{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Faculties already exist, skipping...")
		return nil
	}

	var universities []model.University
	if err := s.db.Find(&universities).Error; err != nil {
		return err
	}

	names := []string{
		"Faculty of Engineering",
		"Faculty of Science",
		"Faculty of Economics and Administrative Sciences",
	}

	var faculties []model.Faculty
	for _, u := range universities {
		for _, n := range names {
			faculties = append(faculties, model.Faculty{Name: n, UniversityID: u.ID})
		}
	}

	if len(faculties) == 0 {
		return nil
	}

	if err := s.db.Create(&faculties).Error; err != nil {
		return err
	}

	log.Printf("Created %d faculties\n", len(faculties))
	return nil
}

// SeedDepartments creates departments for the engineering and science faculties
func (s *Seeder) SeedDepartments() error {
	var count int64
	if err := s.db.Model(&model.Department{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Departments already exist, skipping...")
		return nil
	}

	departmentsByFaculty := map[string][]string{
		"Faculty of Engineering": {
			"Computer Engineering",
			"Electrical and Electronics Engineering",
			"Civil Engineering",
		},
		"Faculty of Science": {
			"Mathematics",
			"Physics",
		},
		"Faculty of Economics and Administrative Sciences": {
			"Business Administration",
			"Economics",
		},
	}

	var faculties []model.Faculty
	if err := s.db.Find(&faculties).Error; err != nil {
		return err
	}

	var departments []model.Department
	for _, f := range faculties {
		for _, n := range departmentsByFaculty[f.Name] {
			departments = append(departments, model.Department{Name: n, FacultyID: f.ID})
		}
	}

	if len(departments) == 0 {
		return nil
	}

	if err := s.db.Create(&departments).Error; err != nil {
		return err
	}

	log.Printf("Created %d departments\n", len(departments))
	return nil
}

// SeedCategories creates the event categories
func (s *Seeder) SeedCategories() error {
	var count int64
	if err := s.db.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Categories already exist, skipping...")
		return nil
	}

	desc := func(s string) *string { return &s }

	categories := []model.Category{
		{Name: "Music", Icon: "music", Description: desc("Concerts, open mic nights and jam sessions")},
		{Name: "Sports", Icon: "sports", Description: desc("Tournaments, matches and training meetups")},
		{Name: "Technology", Icon: "technology", Description: desc("Hackathons, workshops and tech talks")},
		{Name: "Arts", Icon: "arts", Description: desc("Exhibitions, theatre and film screenings")},
		{Name: "Career", Icon: "career", Description: desc("Career fairs, company visits and networking")},
		{Name: "Social", Icon: "social", Description: desc("Parties, picnics and campus gatherings")},
		{Name: "Education", Icon: "education", Description: desc("Seminars, study groups and courses")},
	}

	if err := s.db.Create(&categories).Error; err != nil {
		return err
	}

	log.Printf("Created %d categories\n", len(categories))
	return nil
}
