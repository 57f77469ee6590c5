package usecase

import (
	"context"

	"social-hub/domain/model"
	"social-hub/domain/repository"
)

type IPostUsecase interface {
	List(ctx context.Context, userID int64, filter model.PostFilter) ([]model.Post, error)
	GetByID(ctx context.Context, userID, id int64) (*model.Post, error)
}

type postUsecase struct {
	postRepo repository.IPost
}

func NewPostUsecase(postRepo repository.IPost) IPostUsecase {
	return &postUsecase{postRepo: postRepo}
}

func (u *postUsecase) List(ctx context.Context, userID int64, filter model.PostFilter) ([]model.Post, error) {
	return u.postRepo.List(ctx, userID, filter)
}

func (u *postUsecase) GetByID(ctx context.Context, userID, id int64) (*model.Post, error) {
	return u.postRepo.GetByID(ctx, userID, id)
}
