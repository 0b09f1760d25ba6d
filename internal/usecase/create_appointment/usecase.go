package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/hubtracker/scheduling-service/internal/domain"
	equipmentRepo "github.com/hubtracker/scheduling-service/internal/infra/storage/equipment"
	scheduleRepo "github.com/hubtracker/scheduling-service/internal/infra/storage/schedule"
	"github.com/hubtracker/scheduling-service/internal/integrations/mailer"
	"github.com/hubtracker/scheduling-service/pkg/localtime"
)

// UseCase use case для создания бронирования.
// Проверка пересечений и вставка выполняются в сериализуемой транзакции:
// конфликтный запрос берет FOR UPDATE на пересекающиеся строки, поэтому
// два конкурентных создания одного интервала не могут пройти оба.
type UseCase struct {
	appointmentRepo AppointmentRepository
	equipmentRepo   EquipmentRepository
	scheduleRepo    ScheduleRepository
	userClient      UserDirectoryClient
	mailSender      MailSender
	txManager       TransactionManager
	converter       *localtime.Converter
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	equipmentRepo EquipmentRepository,
	scheduleRepo ScheduleRepository,
	userClient UserDirectoryClient,
	mailSender MailSender,
	txManager TransactionManager,
	converter *localtime.Converter,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		equipmentRepo:   equipmentRepo,
		scheduleRepo:    scheduleRepo,
		userClient:      userClient,
		mailSender:      mailSender,
		txManager:       txManager,
		converter:       converter,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%d, equipment=%d, date=%s, start=%s, end=%s, strictness=%d",
		req.UserID, req.EquipmentID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.Strictness)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем оборудование
	equipment, err := uc.equipmentRepo.GetByID(ctx, req.EquipmentID)
	if err != nil {
		if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
			uc.logger.Warn("CreateAppointment: equipment id=%d not found", req.EquipmentID)
			return nil, ErrEquipmentNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get equipment id=%d: %v", req.EquipmentID, err)
		return nil, fmt.Errorf("%w: failed to get equipment: %w", ErrInternal, err)
	}

	// 3.1. Признак schedulable обязателен только в строгом потоке:
	// администратор может бронировать снятое с публикации оборудование
	if req.Strictness == StrictPolicy && !equipment.IsSchedulable {
		uc.logger.Warn("CreateAppointment: equipment id=%d is not schedulable", req.EquipmentID)
		return nil, ErrEquipmentNotSchedulable
	}

	// 4. Переводим локальные дату и времена в UTC-моменты
	startUTC, err := uc.converter.ToUTC(req.Date, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to convert start time: %w", ErrInternal, err)
	}
	endUTC, err := uc.converter.ToUTC(req.Date, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to convert end time: %w", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 5. Выполняем проверки и вставку в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем политику бронирования
		policy, err := uc.scheduleRepo.GetPolicy(txCtx)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get policy: %v", err)
			return fmt.Errorf("%w: failed to get policy: %w", ErrInternal, err)
		}

		// 5.2. Рабочие часы обязаны покрывать интервал целиком (оба потока)
		hours, err := uc.scheduleRepo.GetOperatingHours(txCtx, domain.DayOfWeek(req.Date))
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrHoursNotFound) {
				uc.logger.Warn("CreateAppointment: hub is closed on %s", req.Date.Format(domain.DateFormat))
				return ErrOutsideOperatingHours
			}
			uc.logger.Error("CreateAppointment: failed to get operating hours: %v", err)
			return fmt.Errorf("%w: failed to get operating hours: %w", ErrInternal, err)
		}
		if !hours.Contains(req.StartTime, req.EndTime) {
			uc.logger.Warn("CreateAppointment: interval %s-%s outside operating hours %s-%s",
				req.StartTime, req.EndTime, hours.StartTime, hours.EndTime)
			return ErrOutsideOperatingHours
		}

		// 5.3. Политика применяется только в строгом потоке
		if req.Strictness == StrictPolicy {
			if startUTC.Before(now.Add(policy.MinNotice())) {
				uc.logger.Warn("CreateAppointment: min notice violated, start=%s, required notice=%.1fh",
					startUTC.Format(domain.DateFormat+" "+domain.TimeFormat), policy.MinBookingNoticeHours)
				return fmt.Errorf("%w: requires %.1f hours notice", ErrMinNotice, policy.MinBookingNoticeHours)
			}

			if endUTC.Sub(startUTC) > policy.MaxDuration() {
				uc.logger.Warn("CreateAppointment: max duration exceeded, duration=%s, limit=%.1fh",
					endUTC.Sub(startUTC), policy.MaxBookingDurationHours)
				return fmt.Errorf("%w: limit is %.1f hours", ErrMaxDuration, policy.MaxBookingDurationHours)
			}
		}

		// 5.4. Проверяем пересечения с блокировкой строк (FOR UPDATE).
		// Репозиторий исключает отмененные бронирования.
		conflicts, err := uc.appointmentRepo.GetByEquipmentWithFilter(txCtx, domain.EquipmentAppointmentsFilter{
			EquipmentID: req.EquipmentID,
			From:        &startUTC,
			To:          &endUTC,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to check conflicts: %v", err)
			return fmt.Errorf("%w: failed to check conflicts: %w", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			uc.logger.Warn("CreateAppointment: slot conflict with appointment id=%d", conflicts[0].ID)
			return ErrSlotConflict
		}

		// 5.5. Создаем бронирование. Оба потока подтверждают сразу
		appt := &domain.Appointment{
			UserID:      req.UserID,
			EquipmentID: req.EquipmentID,
			StartTime:   startUTC,
			EndTime:     endUTC,
			Status:      domain.StatusApproved,
			Purpose:     req.Purpose,
			Notes:       req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// 6. Уведомление отправляется вне транзакции и строго best-effort:
	// любая ошибка логируется и глотается, бронирование уже подтверждено
	if req.Strictness == StrictPolicy {
		go uc.notifyCreated(result, equipment.Name)
	}

	return &Response{
		ID:            result.ID,
		UserID:        result.UserID,
		EquipmentID:   result.EquipmentID,
		EquipmentName: equipment.Name,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		DurationHours: result.DurationHours(),
		Status:        string(result.Status),
		Purpose:       result.Purpose,
		Notes:         result.Notes,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

// notifyCreated ищет пользователя в каталоге и отправляет подтверждение
func (uc *UseCase) notifyCreated(appt *domain.Appointment, equipmentName string) {
	ctx := context.Background()

	user, err := uc.userClient.GetUser(ctx, appt.UserID)
	if err != nil {
		uc.logger.Warn("CreateAppointment: notification skipped, failed to get user id=%d: %v", appt.UserID, err)
		return
	}
	if user.Email == "" {
		uc.logger.Warn("CreateAppointment: notification skipped, user id=%d has no email", appt.UserID)
		return
	}

	date, startTime := uc.converter.FromUTC(appt.StartTime)
	_, endTime := uc.converter.FromUTC(appt.EndTime)

	err = uc.mailSender.SendAppointmentCreated(mailer.AppointmentNotification{
		To:            user.Email,
		RecipientName: user.FullName(),
		EquipmentName: equipmentName,
		Date:          date.Format(domain.DisplayDateFormat),
		StartTime:     formatDisplayTime(startTime),
		EndTime:       formatDisplayTime(endTime),
	})
	if err != nil {
		if errors.Is(err, mailer.ErrDisabled) {
			return
		}
		uc.logger.Warn("CreateAppointment: failed to send confirmation for appointment id=%d: %v", appt.ID, err)
	}
}
