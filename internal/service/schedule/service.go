package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	"github.com/kruglovd/CB-SchedulingService/pkg/types"
)

// Service резолвер статуса слотов: единственное место, где сетка слотов,
// занятость журнала сессий и оверрайды доступности сводятся в итоговый
// трёхзначный статус. Все поверхности (выдача доступности, резервирование,
// планирование) обязаны ходить сюда, а не повторять правила у себя.
type Service struct {
	cfg         domain.ScheduleConfig
	sessionRepo SessionRepository
	availRepo   AvailabilityRepository
	logger      Logger
}

// NewService создает новый резолвер расписания
func NewService(
	cfg domain.ScheduleConfig,
	sessionRepo SessionRepository,
	availRepo AvailabilityRepository,
	logger Logger,
) *Service {
	return &Service{
		cfg:         cfg,
		sessionRepo: sessionRepo,
		availRepo:   availRepo,
		logger:      logger,
	}
}

// Config возвращает рабочее расписание деплоймента
func (s *Service) Config() domain.ScheduleConfig {
	return s.cfg
}

// ResolveDay возвращает упорядоченный список слотов дня с разрешённым
// статусом. Приоритет источников строго фиксирован:
//
//  1. выходной день — все слоты unavailable, данные БД игнорируются;
//  2. активная сессия — booked;
//  3. оверрайд недоступности — unavailable;
//  4. иначе — available.
//
// Перестановка пунктов 2 и 3 позволила бы консультанту оверрайдом
// "спрятать" существующее бронирование, поэтому booked проверяется раньше.
// Вызов внутри транзакции наследует её executor через контекст — резервный
// путь читает занятость с блокировкой FOR UPDATE.
func (s *Service) ResolveDay(ctx context.Context, consultantID int64, date time.Time) ([]domain.ResolvedSlot, error) {
	grid, err := s.cfg.SlotGrid()
	if err != nil {
		return nil, fmt.Errorf("%w: ResolveDay - build slot grid: %v", ErrInternal, err)
	}

	// Выходной день: жёсткое правило, не зависящее от данных.
	// Оверрайды и сессии на эту дату игнорируются, даже если есть в БД.
	if s.cfg.IsClosedDay(date) {
		return s.resolveClosedDay(grid), nil
	}

	occupied, err := s.sessionRepo.GetOccupiedStarts(ctx, consultantID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: ResolveDay - get occupied starts: %v", ErrInternal, err)
	}

	unavailable, err := s.availRepo.GetUnavailableStarts(ctx, consultantID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: ResolveDay - get unavailable starts: %v", ErrInternal, err)
	}

	occupiedSet := toSet(occupied)
	unavailableSet := toSet(unavailable)

	slots := make([]domain.ResolvedSlot, 0, len(grid))
	for _, start := range grid {
		status := domain.SlotAvailable
		switch {
		case occupiedSet[start]:
			status = domain.SlotBooked
		case unavailableSet[start]:
			status = domain.SlotUnavailable
		}

		slot, err := s.resolvedSlot(start, status)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

func (s *Service) resolveClosedDay(grid []types.TimeString) []domain.ResolvedSlot {
	slots := make([]domain.ResolvedSlot, 0, len(grid))
	for _, start := range grid {
		// Сетка строится из валидного конфига, ошибка конца слота невозможна
		end, _ := start.AddMinutes(s.cfg.SlotDurationMinutes)
		slots = append(slots, domain.ResolvedSlot{
			StartTime:       start,
			EndTime:         end,
			DurationMinutes: s.cfg.SlotDurationMinutes,
			Status:          domain.SlotUnavailable,
		})
	}
	return slots
}

func (s *Service) resolvedSlot(start types.TimeString, status domain.SlotStatus) (domain.ResolvedSlot, error) {
	end, err := start.AddMinutes(s.cfg.SlotDurationMinutes)
	if err != nil {
		return domain.ResolvedSlot{}, fmt.Errorf("%w: ResolveDay - compute slot end: %v", ErrInternal, err)
	}
	return domain.ResolvedSlot{
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: s.cfg.SlotDurationMinutes,
		Status:          status,
	}, nil
}

func toSet(starts []types.TimeString) map[types.TimeString]bool {
	set := make(map[types.TimeString]bool, len(starts))
	for _, start := range starts {
		set[start] = true
	}
	return set
}
