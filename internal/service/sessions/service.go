package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	sessionRepo "github.com/kruglovd/CB-SchedulingService/internal/infra/storage/session"
	directoryClient "github.com/kruglovd/CB-SchedulingService/internal/integrations/directory"
	"github.com/kruglovd/CB-SchedulingService/internal/service/sessions/models"
)

// Service сервис чтения журнала сессий
type Service struct {
	sessionRepo SessionRepository
	directory   DirectoryClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	sessionRepo SessionRepository,
	directory DirectoryClient,
	logger Logger,
) *Service {
	return &Service{
		sessionRepo: sessionRepo,
		directory:   directory,
		logger:      logger,
	}
}

// GetByID получает сессию по ID
// Доступ имеют только клиент сессии и её консультант
func (s *Service) GetByID(ctx context.Context, id int64, callerID int64) (*models.SessionResponse, error) {
	s.logger.Info("GetByID: fetching session id=%d for caller=%d", id, callerID)

	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("GetByID: session id=%d not found", id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("GetByID: repository error for session id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if session.ClientID != callerID && session.ConsultantID != callerID {
		s.logger.Warn("GetByID: access denied for caller=%d to session id=%d", callerID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched session id=%d", id)
	return models.FromDomainSession(session), nil
}

// GetClientSessions получает историю сессий клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientSessions(ctx context.Context, req *models.GetClientSessionsRequest) (*models.SessionListResponse, error) {
	s.logger.Info("GetClientSessions: fetching sessions for client=%d, status=%v", req.ClientID, req.Status)

	// Конвертируем статус из строки в domain.SessionStatus
	var domainStatus *domain.SessionStatus
	if req.Status != nil {
		status, err := models.ToDomainSessionStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientSessions: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	sessions, err := s.sessionRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientSessions: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientSessions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientSessions: successfully fetched %d sessions for client=%d", len(sessions), req.ClientID)
	return models.FromDomainSessionList(sessions), nil
}

// GetConsultantSessions получает журнал сессий консультанта с фильтрацией
// по дате, статусу и включению неактивных сессий
// Доступно только самому консультанту
func (s *Service) GetConsultantSessions(ctx context.Context, req *models.GetConsultantSessionsRequest) (*models.SessionListResponse, error) {
	s.logger.Info("GetConsultantSessions: fetching sessions for consultant=%d, caller=%d",
		req.ConsultantID, req.CallerID)

	// Планировать и просматривать журнал может только сам консультант
	if req.CallerID != req.ConsultantID {
		s.logger.Warn("GetConsultantSessions: access denied for caller=%d to consultant=%d",
			req.CallerID, req.ConsultantID)
		return nil, ErrAccessDenied
	}

	// Проверяем, что консультант существует в справочнике
	if _, err := s.directory.GetConsultant(ctx, req.ConsultantID); err != nil {
		if errors.Is(err, directoryClient.ErrConsultantNotFound) {
			s.logger.Warn("GetConsultantSessions: consultant id=%d not found", req.ConsultantID)
			return nil, ErrConsultantNotFound
		}
		s.logger.Error("GetConsultantSessions: failed to get consultant id=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: GetConsultantSessions - failed to get consultant: %v", ErrInternal, err)
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetConsultantSessions: invalid filter for consultant=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	sessions, err := s.sessionRepo.GetByConsultantWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetConsultantSessions: repository error for consultant=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: GetConsultantSessions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetConsultantSessions: successfully fetched %d sessions for consultant=%d",
		len(sessions), req.ConsultantID)
	return models.FromDomainSessionList(sessions), nil
}
