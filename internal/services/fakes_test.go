package services

import (
	"sort"

	"cimsel/internal/models"
	"cimsel/internal/repository"
)

// In-memory repository fakes. They return copies so tests cannot accidentally
// mutate stored state through a returned pointer, and they support targeted
// error injection for the bulk moderation paths.

type fakeBlogRepo struct {
	blogs map[uint]*models.Blog
}

func newFakeBlogRepo(blogs ...*models.Blog) *fakeBlogRepo {
	repo := &fakeBlogRepo{blogs: make(map[uint]*models.Blog)}
	for _, b := range blogs {
		repo.blogs[b.ID] = b
	}
	return repo
}

func (r *fakeBlogRepo) FindByID(id uint) (*models.Blog, error) {
	blog, ok := r.blogs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *blog
	return &copied, nil
}

func (r *fakeBlogRepo) IncrementCommentCount(blogID uint) error {
	if blog, ok := r.blogs[blogID]; ok {
		blog.CommentCount++
	}
	return nil
}

func (r *fakeBlogRepo) DecrementCommentCount(blogID uint) error {
	if blog, ok := r.blogs[blogID]; ok && blog.CommentCount > 0 {
		blog.CommentCount--
	}
	return nil
}

func (r *fakeBlogRepo) count(blogID uint) int {
	return r.blogs[blogID].CommentCount
}

type fakeCommentRepo struct {
	comments  map[uint]models.Comment
	nextID    uint
	updateErr map[uint]error

	// afterFindReplies runs once FindReplies has collected its result, to
	// simulate rows vanishing between the lookup and a following batch call.
	afterFindReplies func()
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{
		comments:  make(map[uint]models.Comment),
		nextID:    1,
		updateErr: make(map[uint]error),
	}
}

func (r *fakeCommentRepo) seed(c models.Comment) models.Comment {
	if c.ID == 0 {
		c.ID = r.nextID
	}
	if c.ID >= r.nextID {
		r.nextID = c.ID + 1
	}
	r.comments[c.ID] = c
	return c
}

func (r *fakeCommentRepo) FindByID(id uint) (*models.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCommentRepo) FindByIDs(ids []uint) ([]models.Comment, error) {
	var found []models.Comment
	for _, id := range ids {
		if c, ok := r.comments[id]; ok {
			found = append(found, c)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	return found, nil
}

func (r *fakeCommentRepo) FindReplies(parentIDs []uint) ([]models.Comment, error) {
	parents := make(map[uint]bool, len(parentIDs))
	for _, id := range parentIDs {
		parents[id] = true
	}
	var found []models.Comment
	for _, c := range r.comments {
		if c.ParentID != nil && parents[*c.ParentID] {
			found = append(found, c)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	if r.afterFindReplies != nil {
		r.afterFindReplies()
	}
	return found, nil
}

func (r *fakeCommentRepo) FindByUser(userID uint) ([]models.Comment, error) {
	var found []models.Comment
	for _, c := range r.comments {
		if c.UserID == userID {
			found = append(found, c)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	return found, nil
}

func (r *fakeCommentRepo) Create(c *models.Comment) error {
	c.ID = r.nextID
	r.nextID++
	r.comments[c.ID] = *c
	return nil
}

func (r *fakeCommentRepo) Update(c *models.Comment) error {
	if err, ok := r.updateErr[c.ID]; ok {
		return err
	}
	if _, ok := r.comments[c.ID]; !ok {
		return repository.ErrNotFound
	}
	r.comments[c.ID] = *c
	return nil
}

func (r *fakeCommentRepo) DeleteByIDs(ids []uint) (int64, error) {
	var deleted int64
	for _, id := range ids {
		if _, ok := r.comments[id]; ok {
			delete(r.comments, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeCommentRepo) MarkRead(ids []uint) (int64, error) {
	var updated int64
	for _, id := range ids {
		if c, ok := r.comments[id]; ok {
			c.IsRead = true
			r.comments[id] = c
			updated++
		}
	}
	return updated, nil
}

type fakeTrustRepo struct {
	trusts map[uint]*models.UserTrust
	nextID uint
}

func newFakeTrustRepo() *fakeTrustRepo {
	return &fakeTrustRepo{trusts: make(map[uint]*models.UserTrust), nextID: 1}
}

func (r *fakeTrustRepo) seed(t models.UserTrust) {
	if t.ID == 0 {
		t.ID = r.nextID
		r.nextID++
	}
	r.trusts[t.UserID] = &t
}

func (r *fakeTrustRepo) GetOrCreate(userID uint) (*models.UserTrust, error) {
	if t, ok := r.trusts[userID]; ok {
		copied := *t
		return &copied, nil
	}
	t := &models.UserTrust{ID: r.nextID, UserID: userID, TrustLevel: models.TrustLevelNew}
	r.nextID++
	r.trusts[userID] = t
	copied := *t
	return &copied, nil
}

func (r *fakeTrustRepo) Update(userID uint, mutate func(*models.UserTrust)) (*models.UserTrust, error) {
	if _, err := r.GetOrCreate(userID); err != nil {
		return nil, err
	}
	t := r.trusts[userID]
	mutate(t)
	copied := *t
	return &copied, nil
}

// newTestCommentService wires a CommentService against fresh fakes with the
// production thresholds and word list.
func newTestCommentService() (*CommentService, *fakeCommentRepo, *fakeBlogRepo, *fakeTrustRepo) {
	comments := newFakeCommentRepo()
	blogs := newFakeBlogRepo(&models.Blog{ID: 1, Title: "Kajian Rutin", Status: models.BlogStatusPublished})
	trusts := newFakeTrustRepo()
	trust := NewTrustService(trusts, TrustThreshold, DistrustThreshold)
	filter := NewContentFilter(DefaultForbiddenWords, DefaultMaxLinks)
	return NewCommentService(comments, blogs, trust, filter), comments, blogs, trusts
}
