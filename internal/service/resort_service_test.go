package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/James3014/skidiy-learn-sub001/internal/dto"
)

func newResortServiceForTest(t *testing.T) (ResortService, *mockRepos) {
	t.Helper()
	repo, mocks := newMockRepos()
	svc := NewResortService(repo, zap.NewNop())
	return svc, mocks
}

func TestCreateResortUniqueName(t *testing.T) {
	svc, _ := newResortServiceForTest(t)

	req := &dto.CreateResortRequest{Name: "万龙滑雪场", Region: "河北崇礼"}
	created, err := svc.Create(context.Background(), req, "admin-1")
	if err != nil {
		t.Fatalf("创建雪场失败: %v", err)
	}
	if !created.IsActive {
		t.Error("新建雪场应默认启用")
	}

	if _, err := svc.Create(context.Background(), req, "admin-1"); !errors.Is(err, ErrResortNameExists) {
		t.Errorf("err = %v, 期望 ErrResortNameExists", err)
	}
}

func TestUpdateResortRename(t *testing.T) {
	svc, _ := newResortServiceForTest(t)

	first, err := svc.Create(context.Background(), &dto.CreateResortRequest{Name: "万龙滑雪场"}, "admin-1")
	if err != nil {
		t.Fatalf("创建雪场失败: %v", err)
	}
	if _, err := svc.Create(context.Background(), &dto.CreateResortRequest{Name: "太舞滑雪小镇"}, "admin-1"); err != nil {
		t.Fatalf("创建雪场失败: %v", err)
	}

	// 改名撞已有名称
	name := "太舞滑雪小镇"
	if _, err := svc.Update(context.Background(), first.ID, &dto.UpdateResortRequest{Name: &name}, "admin-1"); !errors.Is(err, ErrResortNameExists) {
		t.Errorf("err = %v, 期望 ErrResortNameExists", err)
	}

	// 正常改名 + 停用
	name = "万龙度假天堂"
	inactive := false
	updated, err := svc.Update(context.Background(), first.ID, &dto.UpdateResortRequest{
		Name: &name, IsActive: &inactive,
	}, "admin-1")
	if err != nil {
		t.Fatalf("更新雪场失败: %v", err)
	}
	if updated.Name != "万龙度假天堂" || updated.IsActive {
		t.Errorf("更新结果 = %+v, 期望改名且停用", updated)
	}
}

func TestDeleteResortWithLessons(t *testing.T) {
	svc, mocks := newResortServiceForTest(t)

	created, err := svc.Create(context.Background(), &dto.CreateResortRequest{Name: "万龙滑雪场"}, "admin-1")
	if err != nil {
		t.Fatalf("创建雪场失败: %v", err)
	}

	// 有课程的雪场不可删除
	mocks.resort.lessonCounts[created.ID] = 3
	if err := svc.Delete(context.Background(), created.ID, "admin-1"); !errors.Is(err, ErrResortHasLessons) {
		t.Errorf("err = %v, 期望 ErrResortHasLessons", err)
	}

	mocks.resort.lessonCounts[created.ID] = 0
	if err := svc.Delete(context.Background(), created.ID, "admin-1"); err != nil {
		t.Fatalf("删除雪场失败: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), created.ID); !errors.Is(err, ErrResortNotFound) {
		t.Errorf("删除后查询 err = %v, 期望 ErrResortNotFound", err)
	}
}

func TestListResortsFiltersInactive(t *testing.T) {
	svc, _ := newResortServiceForTest(t)

	active, err := svc.Create(context.Background(), &dto.CreateResortRequest{Name: "万龙滑雪场"}, "admin-1")
	if err != nil {
		t.Fatalf("创建雪场失败: %v", err)
	}
	other, err := svc.Create(context.Background(), &dto.CreateResortRequest{Name: "太舞滑雪小镇"}, "admin-1")
	if err != nil {
		t.Fatalf("创建雪场失败: %v", err)
	}
	inactive := false
	if _, err := svc.Update(context.Background(), other.ID, &dto.UpdateResortRequest{IsActive: &inactive}, "admin-1"); err != nil {
		t.Fatalf("停用雪场失败: %v", err)
	}

	list, err := svc.List(context.Background(), &dto.ResortListRequest{})
	if err != nil {
		t.Fatalf("列出雪场失败: %v", err)
	}
	if len(list) != 1 || list[0].ID != active.ID {
		t.Errorf("默认列表 = %+v, 期望仅含启用雪场", list)
	}

	all, err := svc.List(context.Background(), &dto.ResortListRequest{IncludeInactive: true})
	if err != nil {
		t.Fatalf("列出全部雪场失败: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("include_inactive 列表长度 = %d, 期望 2", len(all))
	}
}
