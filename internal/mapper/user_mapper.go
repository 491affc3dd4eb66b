package mapper

import (
	"creative-critique-be/internal/entity"
	"creative-critique-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:                     u.Id,
		Email:                  u.Email,
		FullName:               u.FullName,
		SubscriptionPlan:       entity.SubscriptionPlan(u.SubscriptionPlan),
		ConversationsThisMonth: u.ConversationsThisMonth,
		BillingPeriodStart:     u.BillingPeriodStart,
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:                     u.Id,
		Email:                  u.Email,
		FullName:               u.FullName,
		SubscriptionPlan:       string(u.SubscriptionPlan),
		ConversationsThisMonth: u.ConversationsThisMonth,
		BillingPeriodStart:     u.BillingPeriodStart,
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
	}
}
