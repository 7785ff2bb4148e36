package category

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/app"
	"catalog/domain"
	"catalog/pkg/events"
	"catalog/pkg/flash"
	"catalog/pkg/httperror"
)

// --- Mock repository ---

type mockRepository struct {
	categories map[int64]domain.Category
	nextID     int64

	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	createCalls int
	updateCalls int
	deleteCalls int
}

func newMockRepository(seed ...domain.Category) *mockRepository {
	m := &mockRepository{categories: map[int64]domain.Category{}}
	for _, c := range seed {
		m.categories[c.CategoryID] = c
		if c.CategoryID > m.nextID {
			m.nextID = c.CategoryID
		}
	}
	return m
}

func (m *mockRepository) GetCategories(ctx context.Context) ([]domain.Category, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]domain.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryID < out[j].CategoryID })
	return out, nil
}

func (m *mockRepository) GetCategoryByID(ctx context.Context, id int64) (domain.Category, error) {
	if m.getErr != nil {
		return domain.Category{}, m.getErr
	}
	c, ok := m.categories[id]
	if !ok {
		return domain.Category{}, sql.ErrNoRows
	}
	return c, nil
}

func (m *mockRepository) CreateCategory(ctx context.Context, fields app.CategoryFields) (domain.Category, error) {
	m.createCalls++
	if m.createErr != nil {
		return domain.Category{}, m.createErr
	}
	m.nextID++
	c := domain.Category{
		CategoryID:   m.nextID,
		CategoryName: fields.CategoryName,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	m.categories[c.CategoryID] = c
	return c, nil
}

func (m *mockRepository) UpdateCategory(ctx context.Context, category domain.Category, fields app.CategoryFields) (domain.Category, error) {
	m.updateCalls++
	if m.updateErr != nil {
		return domain.Category{}, m.updateErr
	}
	c := m.categories[category.CategoryID]
	c.CategoryName = fields.CategoryName
	c.UpdatedAt = time.Now().UTC()
	m.categories[c.CategoryID] = c
	return c, nil
}

func (m *mockRepository) DeleteCategory(ctx context.Context, category domain.Category) error {
	m.deleteCalls++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.categories, category.CategoryID)
	return nil
}

// --- Mock publisher ---

type mockPublisher struct {
	published []*events.Event
	err       error
}

func (m *mockPublisher) Publish(ctx context.Context, exchange string, event *events.Event, headers events.Headers) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, event)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

// --- Tests ---

func TestListCategoriesHandler(t *testing.T) {
	repo := newMockRepository(
		domain.Category{CategoryID: 1, CategoryName: "Guitars"},
		domain.Category{CategoryID: 2, CategoryName: "Basses"},
	)
	handler := NewListCategoriesHandler(repo)

	res, err := handler.Handle(context.Background(), &ListCategoriesRequest{})

	require.NoError(t, err)
	require.NotNil(t, res.Page)
	assert.Empty(t, res.Redirect)
	assert.Equal(t, "products/categories", res.Page.Template)
	assert.True(t, res.Page.TakeFlash)

	categories, ok := res.Page.Data["Categories"].([]domain.Category)
	require.True(t, ok)
	require.Len(t, categories, 2)
	assert.Equal(t, "Guitars", categories[0].CategoryName)
}

func TestListCategoriesHandlerRepositoryFailure(t *testing.T) {
	repo := newMockRepository()
	repo.listErr = errors.New("db down")
	handler := NewListCategoriesHandler(repo)

	_, err := handler.Handle(context.Background(), &ListCategoriesRequest{})

	var httpErr *httperror.Error
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "category.index.failed", httpErr.Code)
}

func TestCreateCategoryHandler(t *testing.T) {
	repo := newMockRepository()
	publisher := &mockPublisher{}
	handler := NewCreateCategoryHandler(repo, publisher)

	res, err := handler.Handle(context.Background(), &CreateCategoryRequest{
		CategoryFields: app.CategoryFields{CategoryName: "Amplifiers"},
	})

	require.NoError(t, err)
	assert.Equal(t, ListPath, res.Redirect)
	require.NotNil(t, res.Flash)
	assert.Equal(t, flash.Success, res.Flash.Kind)
	assert.Equal(t, "Amplifiers Created Successfully", res.Flash.Message)

	listed, err := repo.GetCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Amplifiers", listed[0].CategoryName)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, "category.created.v1", publisher.published[0].GetRoutingKey())
}

func TestCreateCategoryHandlerAcceptsEmptyName(t *testing.T) {
	repo := newMockRepository()
	handler := NewCreateCategoryHandler(repo, nil)

	res, err := handler.Handle(context.Background(), &CreateCategoryRequest{})

	require.NoError(t, err)
	assert.Equal(t, ListPath, res.Redirect)
	assert.Equal(t, 1, repo.createCalls)
}

func TestCreateCategoryHandlerPublishFailureDoesNotFailRequest(t *testing.T) {
	repo := newMockRepository()
	publisher := &mockPublisher{err: errors.New("broker gone")}
	handler := NewCreateCategoryHandler(repo, publisher)

	res, err := handler.Handle(context.Background(), &CreateCategoryRequest{
		CategoryFields: app.CategoryFields{CategoryName: "Drums"},
	})

	require.NoError(t, err)
	assert.Equal(t, ListPath, res.Redirect)
}

func TestEditCategoryFormHandler(t *testing.T) {
	repo := newMockRepository(domain.Category{CategoryID: 7, CategoryName: "Guitars"})
	handler := NewEditCategoryFormHandler(repo)

	res, err := handler.Handle(context.Background(), &EditCategoryFormRequest{CategoryID: "7"})

	require.NoError(t, err)
	require.NotNil(t, res.Page)
	assert.Equal(t, "products/category_edit", res.Page.Template)
	assert.Equal(t, "Edit Guitars", res.Page.Title)
}

func TestEditCategoryFormHandlerNotFound(t *testing.T) {
	for _, id := range []string{"42", "abc"} {
		repo := newMockRepository()
		handler := NewEditCategoryFormHandler(repo)

		res, err := handler.Handle(context.Background(), &EditCategoryFormRequest{CategoryID: id})

		require.NoError(t, err)
		assert.Equal(t, ListPath, res.Redirect)
		require.NotNil(t, res.Flash)
		assert.Equal(t, flash.Error, res.Flash.Kind)
		assert.Equal(t, "That Category ID# "+id+" Doesn't Exist", res.Flash.Message)
	}
}

func TestUpdateCategoryHandler(t *testing.T) {
	repo := newMockRepository(domain.Category{CategoryID: 3, CategoryName: "Old"})
	publisher := &mockPublisher{}
	handler := NewUpdateCategoryHandler(repo, publisher)

	res, err := handler.Handle(context.Background(), &UpdateCategoryRequest{
		CategoryID:     "3",
		CategoryFields: app.CategoryFields{CategoryName: "New"},
	})

	require.NoError(t, err)
	assert.Equal(t, ListPath, res.Redirect)
	require.NotNil(t, res.Flash)
	assert.Equal(t, flash.Success, res.Flash.Kind)
	assert.Equal(t, "Changed Old -> New", res.Flash.Message)

	updated, err := repo.GetCategoryByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated.CategoryID)
	assert.Equal(t, "New", updated.CategoryName)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, "category.updated.v1", publisher.published[0].GetRoutingKey())
}

func TestUpdateCategoryHandlerNotFound(t *testing.T) {
	repo := newMockRepository()
	handler := NewUpdateCategoryHandler(repo, nil)

	res, err := handler.Handle(context.Background(), &UpdateCategoryRequest{
		CategoryID:     "42",
		CategoryFields: app.CategoryFields{CategoryName: "New"},
	})

	require.NoError(t, err)
	assert.Equal(t, ListPath, res.Redirect)
	require.NotNil(t, res.Flash)
	assert.Equal(t, flash.Error, res.Flash.Kind)
	assert.Equal(t, "A category with an ID of 42 does not exist!", res.Flash.Message)
	assert.Zero(t, repo.updateCalls)
}

func TestDeleteCategoryFormHandler(t *testing.T) {
	repo := newMockRepository(domain.Category{CategoryID: 5, CategoryName: "Keys"})
	handler := NewDeleteCategoryFormHandler(repo)

	res, err := handler.Handle(context.Background(), &DeleteCategoryFormRequest{CategoryID: "5"})

	require.NoError(t, err)
	require.NotNil(t, res.Page)
	assert.Equal(t, "products/category_delete", res.Page.Template)
	assert.Equal(t, "Delete Keys", res.Page.Title)
	// The confirmation page does not delete anything.
	assert.Zero(t, repo.deleteCalls)
}

func TestDeleteCategoryHandler(t *testing.T) {
	repo := newMockRepository(domain.Category{CategoryID: 5, CategoryName: "Keys"})
	publisher := &mockPublisher{}
	handler := NewDeleteCategoryHandler(repo, publisher)

	res, err := handler.Handle(context.Background(), &DeleteCategoryRequest{CategoryID: "5"})

	require.NoError(t, err)
	assert.Equal(t, ListPath, res.Redirect)
	require.NotNil(t, res.Flash)
	assert.Equal(t, "Deleted Keys!", res.Flash.Message)

	_, err = repo.GetCategoryByID(context.Background(), 5)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, "category.deleted.v1", publisher.published[0].GetRoutingKey())

	// Deletion is terminal: a second delete takes the not-found path.
	res, err = handler.Handle(context.Background(), &DeleteCategoryRequest{CategoryID: "5"})
	require.NoError(t, err)
	assert.Equal(t, ListPath, res.Redirect)
	assert.Equal(t, flash.Error, res.Flash.Kind)
	assert.Equal(t, 1, repo.deleteCalls)
}

func TestMutationsSkippedOnNotFound(t *testing.T) {
	repo := newMockRepository()

	_, err := NewUpdateCategoryHandler(repo, nil).Handle(context.Background(), &UpdateCategoryRequest{CategoryID: "9"})
	require.NoError(t, err)
	_, err = NewDeleteCategoryHandler(repo, nil).Handle(context.Background(), &DeleteCategoryRequest{CategoryID: "9"})
	require.NoError(t, err)

	assert.Zero(t, repo.updateCalls)
	assert.Zero(t, repo.deleteCalls)
}

func TestRepositoryFailurePropagates(t *testing.T) {
	repo := newMockRepository(domain.Category{CategoryID: 1, CategoryName: "Guitars"})
	repo.getErr = errors.New("db down")

	_, err := NewUpdateCategoryHandler(repo, nil).Handle(context.Background(), &UpdateCategoryRequest{CategoryID: "1"})

	var httpErr *httperror.Error
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "category.update.failed", httpErr.Code)
}
