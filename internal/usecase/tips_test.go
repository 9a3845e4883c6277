package usecase

import (
	"context"
	"errors"
	"testing"

	"careerprep/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTipsRepo struct {
	tips map[string][]domain.Tip
	err  error
}

func (r *fakeTipsRepo) ListByCareer(ctx context.Context, careerID string) ([]domain.Tip, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.tips[careerID], nil
}

func TestListTipsPassesThroughOrder(t *testing.T) {
	repo := &fakeTipsRepo{tips: map[string][]domain.Tip{
		"web-dev": {
			{CareerID: "web-dev", Text: "first", OrderIndex: 0},
			{CareerID: "web-dev", Category: "Technical", Text: "second", OrderIndex: 1},
		},
	}}
	svc := NewTipService(repo)

	list, err := svc.ListTips(context.Background(), "web-dev")
	require.NoError(t, err)
	assert.False(t, list.Generic)
	require.Len(t, list.Tips, 2)
	assert.Equal(t, "first", list.Tips[0].Text)
	assert.Equal(t, "second", list.Tips[1].Text)
}

func TestListTipsEmptyFallsBackToGeneric(t *testing.T) {
	svc := NewTipService(&fakeTipsRepo{tips: map[string][]domain.Tip{}})

	list, err := svc.ListTips(context.Background(), "auditor")
	require.NoError(t, err)
	assert.True(t, list.Generic)
	require.NotEmpty(t, list.Tips)
	for i, tip := range list.Tips {
		assert.Equal(t, "auditor", tip.CareerID)
		assert.Equal(t, i, tip.OrderIndex)
	}
}

func TestListTipsRepoError(t *testing.T) {
	svc := NewTipService(&fakeTipsRepo{err: errors.New("connection refused")})

	_, err := svc.ListTips(context.Background(), "web-dev")
	assert.Error(t, err)
}
