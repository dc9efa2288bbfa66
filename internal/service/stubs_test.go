package service

import (
	"context"

	"warbler/internal/models"
)

// Function-field stubs for the repository interfaces. Tests override only the
// calls they care about; everything else succeeds with zero values.

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	searchFn        func(context.Context, string, int, int) ([]models.User, error)
	deleteCascadeFn func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Search(ctx context.Context, q string, limit, offset int) ([]models.User, error) {
	return s.searchFn(ctx, q, limit, offset)
}
func (s *userRepoStub) DeleteCascade(ctx context.Context, id uint) error {
	return s.deleteCascadeFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		searchFn:        func(context.Context, string, int, int) ([]models.User, error) { return nil, nil },
		deleteCascadeFn: func(context.Context, uint) error { return nil },
	}
}

type warbleRepoStub struct {
	createFn      func(context.Context, *models.Warble) error
	getByIDFn     func(context.Context, uint, uint) (*models.Warble, error)
	getByUserIDFn func(context.Context, uint, int, uint) ([]*models.Warble, error)
	feedFn        func(context.Context, uint, int) ([]*models.Warble, error)
	deleteFn      func(context.Context, uint) error
}

func (s *warbleRepoStub) Create(ctx context.Context, warble *models.Warble) error {
	return s.createFn(ctx, warble)
}
func (s *warbleRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Warble, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *warbleRepoStub) GetByUserID(ctx context.Context, userID uint, limit int, currentUserID uint) ([]*models.Warble, error) {
	return s.getByUserIDFn(ctx, userID, limit, currentUserID)
}
func (s *warbleRepoStub) Feed(ctx context.Context, userID uint, limit int) ([]*models.Warble, error) {
	return s.feedFn(ctx, userID, limit)
}
func (s *warbleRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopWarbleRepo() *warbleRepoStub {
	return &warbleRepoStub{
		createFn: func(context.Context, *models.Warble) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Warble, error) {
			return &models.Warble{ID: id}, nil
		},
		getByUserIDFn: func(context.Context, uint, int, uint) ([]*models.Warble, error) { return nil, nil },
		feedFn:        func(context.Context, uint, int) ([]*models.Warble, error) { return nil, nil },
		deleteFn:      func(context.Context, uint) error { return nil },
	}
}

type followRepoStub struct {
	createFn    func(context.Context, uint, uint) error
	deleteFn    func(context.Context, uint, uint) error
	existsFn    func(context.Context, uint, uint) (bool, error)
	followingFn func(context.Context, uint) ([]models.User, error)
	followersFn func(context.Context, uint) ([]models.User, error)
}

func (s *followRepoStub) Create(ctx context.Context, followerID, followedID uint) error {
	return s.createFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followedID uint) error {
	return s.deleteFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followingFn(ctx, userID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followersFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:    func(context.Context, uint, uint) error { return nil },
		deleteFn:    func(context.Context, uint, uint) error { return nil },
		existsFn:    func(context.Context, uint, uint) (bool, error) { return false, nil },
		followingFn: func(context.Context, uint) ([]models.User, error) { return nil, nil },
		followersFn: func(context.Context, uint) ([]models.User, error) { return nil, nil },
	}
}

type likeRepoStub struct {
	toggleFn       func(context.Context, uint, uint) (bool, error)
	existsFn       func(context.Context, uint, uint) (bool, error)
	likedWarblesFn func(context.Context, uint) ([]*models.Warble, error)
}

func (s *likeRepoStub) Toggle(ctx context.Context, userID, warbleID uint) (bool, error) {
	return s.toggleFn(ctx, userID, warbleID)
}
func (s *likeRepoStub) Exists(ctx context.Context, userID, warbleID uint) (bool, error) {
	return s.existsFn(ctx, userID, warbleID)
}
func (s *likeRepoStub) LikedWarbles(ctx context.Context, userID uint) ([]*models.Warble, error) {
	return s.likedWarblesFn(ctx, userID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		toggleFn:       func(context.Context, uint, uint) (bool, error) { return true, nil },
		existsFn:       func(context.Context, uint, uint) (bool, error) { return false, nil },
		likedWarblesFn: func(context.Context, uint) ([]*models.Warble, error) { return nil, nil },
	}
}

type sessionManagerStub struct {
	destroyAllFn func(context.Context, uint) error
}

func (s *sessionManagerStub) DestroyAllForUser(ctx context.Context, userID uint) error {
	return s.destroyAllFn(ctx, userID)
}

func noopSessionManager() *sessionManagerStub {
	return &sessionManagerStub{
		destroyAllFn: func(context.Context, uint) error { return nil },
	}
}
