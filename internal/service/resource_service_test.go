package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/allot/internal/domain"
	"github.com/alexanderramin/allot/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceService_CreateTrimsAndDefaults(t *testing.T) {
	_, resources, _, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewResourceService(resources)

	r := &domain.Resource{Name: "  Grace  ", Role: "SRE"}
	require.NoError(t, svc.Create(ctx, r))
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "Grace", r.Name)
	assert.False(t, r.CreatedAt.IsZero())

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "SRE", list[0].Role)
}

func TestResourceService_CreateRequiresName(t *testing.T) {
	_, resources, _, _ := setupRepos(t)
	svc := NewResourceService(resources)

	err := svc.Create(context.Background(), &domain.Resource{Name: " "})
	assert.ErrorContains(t, err, "resource name is required")
}

func TestResourceService_Delete(t *testing.T) {
	_, resources, _, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewResourceService(resources)

	r := seedResource(t, resources, "Linus")
	require.NoError(t, svc.Delete(ctx, r.ID))

	_, err := svc.GetByID(ctx, r.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
