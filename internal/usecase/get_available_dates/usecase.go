package get_available_dates

import (
	"context"
	"errors"
	"fmt"

	"github.com/hubtracker/scheduling-service/internal/domain"
	equipmentRepo "github.com/hubtracker/scheduling-service/internal/infra/storage/equipment"
	"github.com/hubtracker/scheduling-service/pkg/localtime"
)

// UseCase use case для получения дат, доступных для бронирования
type UseCase struct {
	equipmentRepo EquipmentRepository
	scheduleRepo  ScheduleRepository
	converter     *localtime.Converter
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	equipmentRepo EquipmentRepository,
	scheduleRepo ScheduleRepository,
	converter *localtime.Converter,
	logger Logger,
) *UseCase {
	return &UseCase{
		equipmentRepo: equipmentRepo,
		scheduleRepo:  scheduleRepo,
		converter:     converter,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения доступных дат.
// Дата доступна, если она в окне бронирования, на ее день недели заданы
// рабочие часы, она не заблокирована и (для сегодняшней даты) до закрытия
// остался хотя бы один целый слот.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDates: user=%d, equipment=%d", req.UserID, req.EquipmentID)

	// 1. Валидация входных данных
	if req.EquipmentID <= 0 {
		uc.logger.Warn("GetAvailableDates: validation failed: non-positive equipmentID")
		return nil, fmt.Errorf("%w: equipmentID must be positive", ErrInvalidInput)
	}

	// 2. Получаем оборудование
	equipment, err := uc.equipmentRepo.GetByID(ctx, req.EquipmentID)
	if err != nil {
		if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
			uc.logger.Warn("GetAvailableDates: equipment id=%d not found", req.EquipmentID)
			return nil, ErrEquipmentNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get equipment id=%d: %v", req.EquipmentID, err)
		return nil, fmt.Errorf("%w: failed to get equipment: %w", ErrInternal, err)
	}

	if !equipment.IsSchedulable {
		uc.logger.Warn("GetAvailableDates: equipment id=%d is not schedulable", req.EquipmentID)
		return nil, ErrEquipmentNotSchedulable
	}

	// 3. Текущее время в организационной таймзоне
	nowLocal := uc.converter.In(uc.timeProvider.Now())
	today := uc.converter.LocalDate(nowLocal)

	// 4. Получаем политику бронирования (при отсутствии строки репозиторий
	// возвращает дефолты)
	policy, err := uc.scheduleRepo.GetPolicy(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get policy: %w", ErrInternal, err)
	}

	// 5. Получаем рабочие часы всех дней недели
	hours, err := uc.scheduleRepo.ListOperatingHours(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to list operating hours: %v", err)
		return nil, fmt.Errorf("%w: failed to list operating hours: %w", ErrInternal, err)
	}
	byDay := hoursByWeekday(hours)

	// 6. Получаем блокировки, актуальные для окна бронирования
	blocked, err := uc.scheduleRepo.ListBlockedDates(ctx, today)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to list blocked dates: %v", err)
		return nil, fmt.Errorf("%w: failed to list blocked dates: %w", ErrInternal, err)
	}

	// 7. Перебираем дни окна: сегодня .. сегодня + advance_limit включительно
	dates := make([]AvailableDate, 0, policy.BookingAdvanceLimitDays+1)
	for offset := 0; offset <= policy.BookingAdvanceLimitDays; offset++ {
		date := today.AddDate(0, 0, offset)
		dayOfWeek := domain.DayOfWeek(date)

		dayHours, open := byDay[dayOfWeek]
		if !open {
			continue
		}

		if isDateBlocked(date, blocked) {
			continue
		}

		// Для сегодняшней даты требуем хотя бы один оставшийся целый слот
		if offset == 0 && !hasSlotRemainingToday(dayHours, nowLocal) {
			continue
		}

		dates = append(dates, AvailableDate{
			Date:      date,
			DayOfWeek: dayOfWeek,
			DayName:   domain.DayName(dayOfWeek),
			Display:   date.Format(domain.DisplayDateFormat),
		})
	}

	uc.logger.Info("GetAvailableDates: %d available dates for equipment=%d", len(dates), req.EquipmentID)

	return &Response{
		EquipmentID: req.EquipmentID,
		Timezone:    uc.converter.Location().String(),
		Dates:       dates,
	}, nil
}
