package usecase

import (
	"context"
	"fmt"

	"careerprep/internal/domain"
)

// TipsRepo lists interview tips for a career in ascending order index.
type TipsRepo interface {
	ListByCareer(ctx context.Context, careerID string) ([]domain.Tip, error)
}

// TipList is the result of a tip lookup. Generic is set when the store had
// no tips for the career and the compiled-in fallback was substituted.
type TipList struct {
	Tips    []domain.Tip `json:"tips"`
	Generic bool         `json:"generic"`
}

type TipService struct {
	repo TipsRepo
}

func NewTipService(repo TipsRepo) *TipService {
	return &TipService{repo: repo}
}

// ListTips returns the tips for a career. An empty store result is not an
// error: the generic tips are substituted instead.
func (s *TipService) ListTips(ctx context.Context, careerID string) (*TipList, error) {
	tips, err := s.repo.ListByCareer(ctx, careerID)
	if err != nil {
		return nil, fmt.Errorf("listing tips: %w", err)
	}
	if len(tips) == 0 {
		return &TipList{Tips: genericTips(careerID), Generic: true}, nil
	}
	return &TipList{Tips: tips}, nil
}

var genericTipTexts = []struct {
	category string
	text     string
}{
	{"Preparation", "Research the company, its products and its mission before the interview."},
	{"Preparation", "Re-read the job posting and prepare examples that match each requirement."},
	{"Presentation", "Dress appropriately for the role and arrive at least ten minutes early."},
	{"Communication", "Answer with concrete examples: describe the situation, what you did, and the result."},
	{"Communication", "Prepare two or three questions of your own about the team and the role."},
	{"Follow-up", "Send a short thank-you message within a day of the interview."},
}

func genericTips(careerID string) []domain.Tip {
	tips := make([]domain.Tip, 0, len(genericTipTexts))
	for i, t := range genericTipTexts {
		tips = append(tips, domain.Tip{
			CareerID:   careerID,
			Category:   t.category,
			Text:       t.text,
			OrderIndex: i,
		})
	}
	return tips
}
