package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"careerprep/internal/domain"
	"careerprep/internal/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type ResumesRepo struct {
	pool *pgxpool.Pool
}

func NewResumesRepo(pool *pgxpool.Pool) *ResumesRepo {
	return &ResumesRepo{pool: pool}
}

// Save inserts a new resume row and returns the stored copy with its
// generated id. Every submission creates a new row; there is no upsert.
func (r *ResumesRepo) Save(ctx context.Context, res *domain.StoredResume) (*domain.StoredResume, error) {
	if r.pool == nil {
		return nil, errors.New("resumes db not available")
	}

	expB, err := json.Marshal(res.WorkExperience)
	if err != nil {
		return nil, fmt.Errorf("encoding work_experience: %w", err)
	}
	eduB, err := json.Marshal(res.Education)
	if err != nil {
		return nil, fmt.Errorf("encoding education: %w", err)
	}
	skillsB, err := json.Marshal(res.Skills)
	if err != nil {
		return nil, fmt.Errorf("encoding skills: %w", err)
	}
	interestsB, err := json.Marshal(res.Interests)
	if err != nil {
		return nil, fmt.Errorf("encoding interests: %w", err)
	}
	refsB, err := json.Marshal(res.References)
	if err != nil {
		return nil, fmt.Errorf("encoding professional_references: %w", err)
	}

	stored := *res
	stored.ID = uuid.New()

	_, err = r.pool.Exec(ctx, `INSERT INTO resumes
		(id, user_id, career_id, full_name, email, phone, address, zip_code, city,
		 linkedin_url, website_url, summary, photo_url,
		 work_experience, education, skills, interests, professional_references, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`,
		stored.ID, stored.UserID, stored.CareerID, stored.FullName, stored.Email,
		stored.Phone, stored.Address, stored.ZipCode, stored.City,
		stored.LinkedinURL, stored.WebsiteURL, stored.Summary, stored.PhotoURL,
		expB, eduB, skillsB, interestsB, refsB, stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &stored, nil
}

func (r *ResumesRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.StoredResume, error) {
	if r.pool == nil {
		return nil, errors.New("resumes db not available")
	}
	return scanResume(r.pool.QueryRow(ctx, selectResume+` WHERE id = $1`, id))
}

func (r *ResumesRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.StoredResume, error) {
	if r.pool == nil {
		return nil, errors.New("resumes db not available")
	}

	rows, err := r.pool.Query(ctx, selectResume+` WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []domain.StoredResume
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

const selectResume = `SELECT id, user_id, career_id, full_name, email, phone, address, zip_code, city,
	linkedin_url, website_url, summary, photo_url,
	work_experience, education, skills, interests, professional_references, created_at
	FROM resumes`

func scanResume(row pgx.Row) (*domain.StoredResume, error) {
	res := &domain.StoredResume{}
	var expB, eduB, skillsB, interestsB, refsB []byte
	err := row.Scan(&res.ID, &res.UserID, &res.CareerID, &res.FullName, &res.Email,
		&res.Phone, &res.Address, &res.ZipCode, &res.City,
		&res.LinkedinURL, &res.WebsiteURL, &res.Summary, &res.PhotoURL,
		&expB, &eduB, &skillsB, &interestsB, &refsB, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(expB, &res.WorkExperience); err != nil {
		return nil, fmt.Errorf("decoding work_experience: %w", err)
	}
	if err := json.Unmarshal(eduB, &res.Education); err != nil {
		return nil, fmt.Errorf("decoding education: %w", err)
	}
	if err := json.Unmarshal(skillsB, &res.Skills); err != nil {
		return nil, fmt.Errorf("decoding skills: %w", err)
	}
	if err := json.Unmarshal(interestsB, &res.Interests); err != nil {
		return nil, fmt.Errorf("decoding interests: %w", err)
	}
	if err := json.Unmarshal(refsB, &res.References); err != nil {
		return nil, fmt.Errorf("decoding professional_references: %w", err)
	}
	return res, nil
}
