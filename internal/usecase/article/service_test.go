package article_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duo-blog/internal/common/pagination"
	"duo-blog/internal/domain/entity"
	artUC "duo-blog/internal/usecase/article"
	"duo-blog/internal/utils/text"
)

/* ───────── stub ───────── */

// stubRepo is an in-memory ArticleRepository that counts calls.
type stubRepo struct {
	data   map[int64]*entity.Article
	nextID int64
	err    error

	searchCalls int
	searchQuery string
	searchOut   []*entity.Article
	updateNil   bool
	deleted     []int64
}

func newStub() *stubRepo {
	return &stubRepo{data: map[int64]*entity.Article{}, nextID: 1}
}

func (s *stubRepo) Get(_ context.Context, id int64) (*entity.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.data[id], nil
}

func (s *stubRepo) ListPage(_ context.Context, offset, limit int) ([]*entity.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	ids := make([]int64, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	var out []*entity.Article
	for i := offset; i < len(ids) && i < offset+limit; i++ {
		out = append(out, s.data[ids[i]])
	}
	return out, nil
}

func (s *stubRepo) Count(_ context.Context) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.data)), nil
}

func (s *stubRepo) Search(_ context.Context, query string) ([]*entity.Article, error) {
	s.searchCalls++
	s.searchQuery = query
	return s.searchOut, s.err
}

func (s *stubRepo) Create(_ context.Context, a *entity.Article) error {
	if s.err != nil {
		return s.err
	}
	a.ID = s.nextID
	s.nextID++
	s.data[a.ID] = a
	return nil
}

func (s *stubRepo) Update(_ context.Context, a *entity.Article) (*entity.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.updateNil {
		return nil, nil
	}
	stored := *a
	s.data[a.ID] = &stored
	return &stored, nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.data[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.data, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubRepo) seed(id int64, author *entity.User) *entity.Article {
	a := &entity.Article{ID: id, Title: "title", Content: "content", Author: author}
	s.data[id] = a
	if id >= s.nextID {
		s.nextID = id + 1
	}
	return a
}

var (
	alice = &entity.User{ID: 1, Name: "alice"}
	bob   = &entity.User{ID: 2, Name: "bob"}
)

/* ───────── Create ───────── */

func TestService_Create(t *testing.T) {
	tests := []struct {
		name    string
		article *entity.Article
		wantErr bool
	}{
		{name: "valid", article: &entity.Article{Title: "Go", Content: "generics"}},
		{name: "empty title", article: &entity.Article{Title: "", Content: "generics"}, wantErr: true},
		{name: "blank title", article: &entity.Article{Title: "   ", Content: "generics"}, wantErr: true},
		{name: "empty content", article: &entity.Article{Title: "Go", Content: ""}, wantErr: true},
		{name: "both empty", article: &entity.Article{}, wantErr: true},
		{name: "nil article", article: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStub()
			svc := artUC.Service{Repo: repo}

			err := svc.Create(context.Background(), tt.article, alice)

			if tt.wantErr {
				var ce *artUC.CreationError
				require.ErrorAs(t, err, &ce)
				assert.Equal(t, artUC.ValidationMessage, ce.Message)
				assert.ErrorIs(t, err, entity.ErrInvalidInput)
				assert.Empty(t, repo.data)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), tt.article.ID)
			assert.Same(t, alice, tt.article.Author)
		})
	}
}

func TestService_Create_OverridesClientAuthor(t *testing.T) {
	repo := newStub()
	svc := artUC.Service{Repo: repo}
	a := &entity.Article{Title: "t", Content: "c", Author: bob}

	require.NoError(t, svc.Create(context.Background(), a, alice))
	assert.Equal(t, alice.ID, repo.data[a.ID].AuthorID())
}

func TestService_Create_StoresContentAsSubmitted(t *testing.T) {
	repo := newStub()
	svc := artUC.Service{Repo: repo, Sanitizer: text.NewSanitizer()}

	const body = `Tom & Jerry: if a < b then "ok"`
	a := &entity.Article{Title: "t", Content: body}
	require.NoError(t, svc.Create(context.Background(), a, alice))
	assert.Equal(t, body, repo.data[a.ID].Content)

	// content that is nothing but a script renders empty
	scriptOnly := &entity.Article{Title: "t", Content: `<script>alert(1)</script>`}
	var ce *artUC.CreationError
	assert.ErrorAs(t, svc.Create(context.Background(), scriptOnly, alice), &ce)
}

func TestService_Modify_RoundTripKeepsContent(t *testing.T) {
	repo := newStub()
	svc := artUC.Service{Repo: repo, Sanitizer: text.NewSanitizer()}

	created := &entity.Article{Title: "t", Content: `<p>Tom &amp; Jerry</p> & a < b`}
	require.NoError(t, svc.Create(context.Background(), created, alice))
	stored := repo.data[created.ID].Content

	for i := 0; i < 3; i++ {
		got, err := svc.Modify(context.Background(),
			&entity.Article{ID: created.ID, Title: "t", Content: stored}, alice)
		require.NoError(t, err)
		assert.Equal(t, stored, got.Content)
		stored = got.Content
	}
	assert.Equal(t, `<p>Tom &amp; Jerry</p> & a < b`, repo.data[created.ID].Content)
}

func TestService_Create_RepoError(t *testing.T) {
	repo := newStub()
	repo.err = errors.New("db down")
	svc := artUC.Service{Repo: repo}

	err := svc.Create(context.Background(), &entity.Article{Title: "t", Content: "c"}, alice)
	require.Error(t, err)
	assert.ErrorIs(t, err, repo.err)
	var ce *artUC.CreationError
	assert.False(t, errors.As(err, &ce))
}

/* ───────── Modify ───────── */

func TestService_Modify(t *testing.T) {
	tests := []struct {
		name        string
		seedAuthor  *entity.User
		seed        bool
		updateNil   bool
		requested   *entity.Article
		user        *entity.User
		wantMessage string
	}{
		{
			name: "author modifies", seed: true, seedAuthor: alice,
			requested: &entity.Article{ID: 10, Title: "new", Content: "body"}, user: alice,
		},
		{
			name: "invalid input", seed: true, seedAuthor: alice,
			requested: &entity.Article{ID: 10, Title: "", Content: "body"}, user: alice,
			wantMessage: artUC.ValidationMessage,
		},
		{
			name:        "missing article",
			requested:   &entity.Article{ID: 10, Title: "new", Content: "body"},
			user:        alice,
			wantMessage: artUC.NotFoundMessage,
		},
		{
			name: "non-owner looks like missing", seed: true, seedAuthor: alice,
			requested: &entity.Article{ID: 10, Title: "new", Content: "body"}, user: bob,
			wantMessage: artUC.NotFoundMessage,
		},
		{
			name: "article without author", seed: true, seedAuthor: nil,
			requested: &entity.Article{ID: 10, Title: "new", Content: "body"}, user: alice,
			wantMessage: artUC.NotFoundMessage,
		},
		{
			name: "update matched nothing", seed: true, seedAuthor: alice, updateNil: true,
			requested: &entity.Article{ID: 10, Title: "new", Content: "body"}, user: alice,
			wantMessage: artUC.UnexpectedMessage,
		},
		{
			name:        "nil request",
			requested:   nil,
			user:        alice,
			wantMessage: artUC.ValidationMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStub()
			repo.updateNil = tt.updateNil
			if tt.seed {
				repo.seed(10, tt.seedAuthor)
			}
			svc := artUC.Service{Repo: repo}

			got, err := svc.Modify(context.Background(), tt.requested, tt.user)

			if tt.wantMessage != "" {
				var me *artUC.ModificationError
				require.ErrorAs(t, err, &me)
				assert.Equal(t, tt.wantMessage, me.Message)
				assert.Nil(t, got)
				if tt.seed {
					assert.Equal(t, "title", repo.data[10].Title, "stored article must be unchanged")
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "new", got.Title)
			assert.Equal(t, alice.ID, got.AuthorID())
			assert.Equal(t, "new", repo.data[10].Title)
		})
	}
}

func TestService_Modify_NonOwnerIndistinguishableFromMissing(t *testing.T) {
	repo := newStub()
	repo.seed(10, alice)
	svc := artUC.Service{Repo: repo}

	_, denied := svc.Modify(context.Background(), &entity.Article{ID: 10, Title: "x", Content: "y"}, bob)
	_, missing := svc.Modify(context.Background(), &entity.Article{ID: 11, Title: "x", Content: "y"}, bob)

	assert.Equal(t, missing.Error(), denied.Error())
	assert.ErrorIs(t, denied, artUC.ErrArticleNotFound)
	assert.ErrorIs(t, missing, artUC.ErrArticleNotFound)
	assert.False(t, errors.Is(denied, artUC.ErrNotAuthor))
}

func TestService_Ownership_ComparesIDsByValue(t *testing.T) {
	// distinct pointers with ids outside any small-value cache
	author := &entity.User{ID: 1000, Name: "author"}
	sameID := &entity.User{ID: 1000, Name: "author again"}
	other := &entity.User{ID: 1001, Name: "other"}

	t.Run("modify", func(t *testing.T) {
		repo := newStub()
		repo.seed(10, author)
		svc := artUC.Service{Repo: repo}

		got, err := svc.Modify(context.Background(), &entity.Article{ID: 10, Title: "new", Content: "body"}, sameID)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), got.AuthorID())

		_, err = svc.Modify(context.Background(), &entity.Article{ID: 10, Title: "x", Content: "y"}, other)
		var me *artUC.ModificationError
		require.ErrorAs(t, err, &me)
		assert.Equal(t, artUC.NotFoundMessage, me.Message)
	})

	t.Run("delete", func(t *testing.T) {
		repo := newStub()
		repo.seed(10, author)
		svc := artUC.Service{Repo: repo}

		assert.ErrorIs(t, svc.Delete(context.Background(), 10, other), artUC.ErrNotAuthor)
		require.NoError(t, svc.Delete(context.Background(), 10, sameID))
		assert.Equal(t, []int64{10}, repo.deleted)
	})
}

func TestService_Modify_RepoError(t *testing.T) {
	repo := newStub()
	repo.err = errors.New("boom")
	svc := artUC.Service{Repo: repo}

	_, err := svc.Modify(context.Background(), &entity.Article{ID: 1, Title: "x", Content: "y"}, alice)
	assert.ErrorIs(t, err, repo.err)
}

/* ───────── Delete ───────── */

func TestService_Delete(t *testing.T) {
	tests := []struct {
		name    string
		id      int64
		seed    bool
		author  *entity.User
		user    *entity.User
		wantErr error
	}{
		{name: "author deletes", id: 10, seed: true, author: alice, user: alice},
		{name: "negative id", id: -1, user: alice, wantErr: artUC.ErrArticleNotFound},
		{name: "zero id", id: 0, user: alice, wantErr: artUC.ErrArticleNotFound},
		{name: "missing article", id: 99, user: alice, wantErr: artUC.ErrArticleNotFound},
		{name: "article without author", id: 10, seed: true, author: nil, user: alice, wantErr: artUC.ErrArticleNotFound},
		{name: "other user's article", id: 10, seed: true, author: alice, user: bob, wantErr: artUC.ErrNotAuthor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStub()
			if tt.seed {
				repo.seed(tt.id, tt.author)
			}
			svc := artUC.Service{Repo: repo}

			err := svc.Delete(context.Background(), tt.id, tt.user)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.deleted)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []int64{tt.id}, repo.deleted)
		})
	}
}

func TestService_Delete_RepoError(t *testing.T) {
	repo := newStub()
	repo.err = errors.New("boom")
	svc := artUC.Service{Repo: repo}

	err := svc.Delete(context.Background(), 5, alice)
	assert.ErrorIs(t, err, repo.err)
	assert.False(t, errors.Is(err, artUC.ErrArticleNotFound))
}

/* ───────── queries ───────── */

func TestService_FindByQuery(t *testing.T) {
	t.Run("blank query skips repository", func(t *testing.T) {
		for _, q := range []string{"", "   "} {
			repo := newStub()
			svc := artUC.Service{Repo: repo}

			got, err := svc.FindByQuery(context.Background(), q)
			require.NoError(t, err)
			assert.Nil(t, got)
			assert.Zero(t, repo.searchCalls)
		}
	})

	t.Run("returns repository result unchanged", func(t *testing.T) {
		repo := newStub()
		repo.searchOut = []*entity.Article{{ID: 3}, {ID: 1}, {ID: 2}}
		svc := artUC.Service{Repo: repo}

		got, err := svc.FindByQuery(context.Background(), "test")
		require.NoError(t, err)
		assert.Equal(t, repo.searchOut, got)
		assert.Equal(t, "test", repo.searchQuery)
		assert.Equal(t, 1, repo.searchCalls)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := newStub()
		repo.err = errors.New("boom")
		svc := artUC.Service{Repo: repo}

		_, err := svc.FindByQuery(context.Background(), "test")
		assert.ErrorIs(t, err, repo.err)
	})
}

func TestService_FindByID(t *testing.T) {
	repo := newStub()
	seeded := repo.seed(4, alice)
	svc := artUC.Service{Repo: repo}

	got, err := svc.FindByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Same(t, seeded, got)

	for _, id := range []int64{0, -1, 99} {
		got, err := svc.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Nil(t, got, "id %d", id)
	}
}

func TestService_FindByPageNumber(t *testing.T) {
	repo := newStub()
	for id := int64(1); id <= 62; id++ {
		repo.seed(id, alice)
	}
	svc := artUC.Service{Repo: repo}

	// 62 articles at 5 per page is 13 pages
	tests := []struct {
		page, start, end int
		firstID          int64
		items            int
	}{
		{page: 1, start: 1, end: 6, firstID: 62, items: 5},
		{page: 7, start: 2, end: 12, firstID: 32, items: 5},
		{page: 12, start: 7, end: 13, firstID: 7, items: 5},
		{page: 13, start: 8, end: 13, firstID: 2, items: 2},
	}

	for _, tt := range tests {
		w, err := svc.FindByPageNumber(context.Background(), tt.page)
		require.NoError(t, err)
		assert.Equal(t, tt.page, w.CurrentPage())
		assert.Equal(t, tt.start, w.StartPage(), "start of page %d", tt.page)
		assert.Equal(t, tt.end, w.EndPage(), "end of page %d", tt.page)
		require.Len(t, w.Items(), tt.items)
		assert.Equal(t, tt.firstID, w.Items()[0].ID)
	}
}

func TestService_FindByPageNumber_Deterministic(t *testing.T) {
	repo := newStub()
	for id := int64(1); id <= 30; id++ {
		repo.seed(id, alice)
	}
	svc := artUC.Service{Repo: repo}

	a, err := svc.FindByPageNumber(context.Background(), 3)
	require.NoError(t, err)
	b, err := svc.FindByPageNumber(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t,
		[3]int{a.StartPage(), a.CurrentPage(), a.EndPage()},
		[3]int{b.StartPage(), b.CurrentPage(), b.EndPage()})
}

func TestService_FindByPageNumber_Invalid(t *testing.T) {
	repo := newStub()
	for id := int64(1); id <= 6; id++ {
		repo.seed(id, alice)
	}
	svc := artUC.Service{Repo: repo}

	for _, page := range []int{0, -1, 3} {
		_, err := svc.FindByPageNumber(context.Background(), page)
		assert.ErrorIs(t, err, pagination.ErrInvalidPage, "page %d", page)
	}
}

func TestService_FindByPageNumber_Empty(t *testing.T) {
	svc := artUC.Service{Repo: newStub()}

	w, err := svc.FindByPageNumber(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, w.CurrentPage())
	assert.Equal(t, 1, w.StartPage())
	assert.Equal(t, 0, w.EndPage())
	assert.Empty(t, w.Items())
}
