package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hubtracker/scheduling-service/internal/domain"
	equipmentRepo "github.com/hubtracker/scheduling-service/internal/infra/storage/equipment"
	scheduleRepo "github.com/hubtracker/scheduling-service/internal/infra/storage/schedule"
	"github.com/hubtracker/scheduling-service/pkg/localtime"
	"github.com/hubtracker/scheduling-service/pkg/ptr"
	"github.com/hubtracker/scheduling-service/pkg/types"
)

// UseCase use case для получения доступных слотов.
// Минимальный срок уведомления (min_notice) здесь НЕ применяется: он
// ограничивает только создание бронирования, перечисление слотов обязано
// показывать всё, что лежит в рабочих часах и свободно от пересечений.
type UseCase struct {
	appointmentRepo AppointmentRepository
	equipmentRepo   EquipmentRepository
	scheduleRepo    ScheduleRepository
	converter       *localtime.Converter
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	equipmentRepo EquipmentRepository,
	scheduleRepo ScheduleRepository,
	converter *localtime.Converter,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		equipmentRepo:   equipmentRepo,
		scheduleRepo:    scheduleRepo,
		converter:       converter,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, equipment=%d, date=%s, startTime=%v",
		req.UserID, req.EquipmentID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время в организационной таймзоне
	nowLocal := uc.converter.In(uc.timeProvider.Now())
	today := uc.converter.LocalDate(nowLocal)

	// 3. Получаем оборудование
	equipment, err := uc.equipmentRepo.GetByID(ctx, req.EquipmentID)
	if err != nil {
		if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
			uc.logger.Warn("GetAvailableSlots: equipment id=%d not found", req.EquipmentID)
			return nil, ErrEquipmentNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get equipment id=%d: %v", req.EquipmentID, err)
		return nil, fmt.Errorf("%w: failed to get equipment: %w", ErrInternal, err)
	}

	if !equipment.IsSchedulable {
		uc.logger.Warn("GetAvailableSlots: equipment id=%d is not schedulable", req.EquipmentID)
		return nil, ErrEquipmentNotSchedulable
	}

	// 4. Получаем политику бронирования
	policy, err := uc.scheduleRepo.GetPolicy(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get policy: %w", ErrInternal, err)
	}

	// 5. Валидация даты с учетом окна бронирования
	if err := validateDate(req.Date, today, policy.BookingAdvanceLimitDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 6. Проверяем блокировки
	blocked, err := uc.scheduleRepo.ListBlockedDates(ctx, today)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list blocked dates: %v", err)
		return nil, fmt.Errorf("%w: failed to list blocked dates: %w", ErrInternal, err)
	}
	if isDateBlocked(req.Date, blocked) {
		uc.logger.Warn("GetAvailableSlots: date %s is blocked", req.Date.Format(domain.DateFormat))
		return nil, ErrDateBlocked
	}

	// 7. Получаем рабочие часы на день недели
	hours, err := uc.scheduleRepo.GetOperatingHours(ctx, domain.DayOfWeek(req.Date))
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrHoursNotFound) {
			uc.logger.Warn("GetAvailableSlots: hub is closed on %s", req.Date.Format(domain.DateFormat))
			return nil, ErrClosedOnDate
		}
		uc.logger.Error("GetAvailableSlots: failed to get operating hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get operating hours: %w", ErrInternal, err)
	}

	// 8. Получаем все активные бронирования, пересекающие локальные сутки
	dayStart, err := uc.converter.ToUTC(req.Date, types.TimeString("00:00"))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute day bounds: %w", ErrInternal, err)
	}
	dayEnd, err := uc.converter.ToUTC(req.Date.AddDate(0, 0, 1), types.TimeString("00:00"))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute day bounds: %w", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.GetByEquipmentWithFilter(ctx, domain.EquipmentAppointmentsFilter{
		EquipmentID: req.EquipmentID,
		From:        &dayStart,
		To:          &dayEnd,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}

	// 9. Режим перечисления: времена начала либо времена окончания
	var slots []Slot
	if req.StartTime == nil {
		slots, err = uc.enumerateStartTimes(req, hours, appointments, isSameDay(req.Date, today), nowLocal)
	} else {
		slots, err = uc.enumerateEndTimes(req, hours, policy, appointments)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: %d slots for equipment=%d, date=%s",
		len(slots), req.EquipmentID, req.Date.Format(domain.DateFormat))

	return &Response{
		EquipmentID: req.EquipmentID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		Slots:       slots,
	}, nil
}

// enumerateStartTimes перечисляет времена начала: кандидаты слот-сетки в
// рабочих часах, для которых минимальный слот [s, s+step) свободен
func (uc *UseCase) enumerateStartTimes(
	req *Request,
	hours *domain.OperatingHours,
	appointments []*domain.Appointment,
	today bool,
	nowLocal time.Time,
) ([]Slot, error) {
	candidates, err := buildStartCandidates(hours, today, nowLocal)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build start candidates: %v", err)
		return nil, fmt.Errorf("%w: failed to build start candidates: %w", ErrInternal, err)
	}

	slots := make([]Slot, 0, len(candidates))
	for _, candidate := range candidates {
		slotEnd, err := candidate.AddMinutes(domain.SlotStepMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to compute slot end: %w", ErrInternal, err)
		}

		startUTC, err := uc.converter.ToUTC(req.Date, candidate)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to convert slot start: %w", ErrInternal, err)
		}
		endUTC, err := uc.converter.ToUTC(req.Date, slotEnd)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to convert slot end: %w", ErrInternal, err)
		}

		if overlapsActive(startUTC, endUTC, appointments) {
			continue
		}

		slots = append(slots, Slot{
			Time:    candidate,
			Display: displayTime(candidate),
		})
	}

	return slots, nil
}

// enumerateEndTimes перечисляет времена окончания для выбранного начала:
// кандидаты с шагом слота до минимума из закрытия и max_duration,
// обрезанные на первом пересечении с активным бронированием
func (uc *UseCase) enumerateEndTimes(
	req *Request,
	hours *domain.OperatingHours,
	policy *domain.SchedulingPolicy,
	appointments []*domain.Appointment,
) ([]Slot, error) {
	start := *req.StartTime

	if err := validateStartTime(start, hours); err != nil {
		uc.logger.Warn("GetAvailableSlots: start time validation failed: %v", err)
		return nil, err
	}

	startUTC, err := uc.converter.ToUTC(req.Date, start)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to convert start time: %w", ErrInternal, err)
	}

	maxDurationMinutes := int(policy.MaxBookingDurationHours * 60)

	slots := make([]Slot, 0)
	for minutes := domain.SlotStepMinutes; minutes <= maxDurationMinutes; minutes += domain.SlotStepMinutes {
		candidate, err := start.AddMinutes(minutes)
		if err != nil {
			// Кандидат вышел за пределы суток
			break
		}
		if candidate.IsAfter(hours.EndTime) {
			break
		}

		endUTC, err := uc.converter.ToUTC(req.Date, candidate)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to convert end time: %w", ErrInternal, err)
		}

		// Интервалы с общим началом растут: первое пересечение обрезает
		// все последующие кандидаты
		if overlapsActive(startUTC, endUTC, appointments) {
			break
		}

		durationHours := float64(minutes) / 60.0
		slots = append(slots, Slot{
			Time:          candidate,
			Display:       displayEndTime(candidate, durationHours),
			DurationHours: ptr.Ptr(durationHours),
		})
	}

	return slots, nil
}
