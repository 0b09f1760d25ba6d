package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hubtracker/scheduling-service/internal/domain"
	scheduleRepo "github.com/hubtracker/scheduling-service/internal/infra/storage/schedule"
	"github.com/hubtracker/scheduling-service/internal/service/schedule/models"
	"github.com/hubtracker/scheduling-service/pkg/localtime"
)

// Service сервис административной конфигурации расписания
type Service struct {
	scheduleRepo ScheduleRepository
	converter    *localtime.Converter
	timeProvider TimeProvider
	logger       Logger
}

// realTimeProvider провайдер текущего времени для production
type realTimeProvider struct{}

func (p *realTimeProvider) Now() time.Time {
	return time.Now()
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	converter *localtime.Converter,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		converter:    converter,
		timeProvider: &realTimeProvider{},
		logger:       logger,
	}
}

// GetConfig возвращает полную конфигурацию расписания: рабочие часы,
// актуальные блокировки и политику бронирования
func (s *Service) GetConfig(ctx context.Context) (*models.ScheduleConfigResponse, error) {
	s.logger.Info("GetConfig: fetching schedule configuration")

	hours, err := s.scheduleRepo.ListOperatingHours(ctx)
	if err != nil {
		s.logger.Error("GetConfig: failed to list operating hours: %v", err)
		return nil, fmt.Errorf("%w: failed to list operating hours: %w", ErrInternal, err)
	}

	today := s.converter.LocalDate(s.timeProvider.Now())
	blocked, err := s.scheduleRepo.ListBlockedDates(ctx, today)
	if err != nil {
		s.logger.Error("GetConfig: failed to list blocked dates: %v", err)
		return nil, fmt.Errorf("%w: failed to list blocked dates: %w", ErrInternal, err)
	}

	policy, err := s.scheduleRepo.GetPolicy(ctx)
	if err != nil {
		s.logger.Error("GetConfig: failed to get policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get policy: %w", ErrInternal, err)
	}

	return &models.ScheduleConfigResponse{
		Timezone:     s.converter.Location().String(),
		Hours:        models.FromDomainHoursList(hours),
		BlockedDates: models.FromDomainBlockedDateList(blocked),
		Policy:       models.FromDomainPolicy(policy),
	}, nil
}

// UpsertHours устанавливает рабочие часы одного дня недели
func (s *Service) UpsertHours(ctx context.Context, req *models.UpsertHoursRequest) (*models.OperatingHoursResponse, error) {
	s.logger.Info("UpsertHours: day=%d, start=%s, end=%s", req.DayOfWeek, req.StartTime, req.EndTime)

	if !domain.ValidDayOfWeek(req.DayOfWeek) {
		s.logger.Warn("UpsertHours: invalid day of week %d", req.DayOfWeek)
		return nil, fmt.Errorf("%w: dayOfWeek must be between 0 and 6", ErrInvalidInput)
	}

	start, end, err := req.ParseTimeStrings()
	if err != nil {
		s.logger.Warn("UpsertHours: invalid time format: %v", err)
		return nil, fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if !start.IsBefore(end) {
		s.logger.Warn("UpsertHours: start %s is not before end %s", start, end)
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	updated, err := s.scheduleRepo.UpsertOperatingHours(ctx, &domain.OperatingHours{
		DayOfWeek: req.DayOfWeek,
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		s.logger.Error("UpsertHours: repository error for day=%d: %v", req.DayOfWeek, err)
		return nil, fmt.Errorf("%w: UpsertHours - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("UpsertHours: successfully set hours for day=%d", req.DayOfWeek)
	return models.FromDomainHours(updated), nil
}

// DeleteHours закрывает день недели: без строки рабочих часов день
// полностью недоступен для бронирования
func (s *Service) DeleteHours(ctx context.Context, dayOfWeek int) error {
	s.logger.Info("DeleteHours: day=%d", dayOfWeek)

	if !domain.ValidDayOfWeek(dayOfWeek) {
		s.logger.Warn("DeleteHours: invalid day of week %d", dayOfWeek)
		return fmt.Errorf("%w: dayOfWeek must be between 0 and 6", ErrInvalidInput)
	}

	if err := s.scheduleRepo.DeleteOperatingHours(ctx, dayOfWeek); err != nil {
		if errors.Is(err, scheduleRepo.ErrHoursNotFound) {
			s.logger.Warn("DeleteHours: no hours set for day=%d", dayOfWeek)
			return ErrHoursNotFound
		}
		s.logger.Error("DeleteHours: repository error for day=%d: %v", dayOfWeek, err)
		return fmt.Errorf("%w: DeleteHours - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("DeleteHours: successfully closed day=%d", dayOfWeek)
	return nil
}

// AddBlockedDate блокирует дату для бронирования
func (s *Service) AddBlockedDate(ctx context.Context, req *models.AddBlockedDateRequest) (*models.BlockedDateResponse, error) {
	s.logger.Info("AddBlockedDate: date=%s, recurring=%v", req.Date.Format(domain.DateFormat), req.IsAnnualRecurring)

	if req.Date.IsZero() {
		s.logger.Warn("AddBlockedDate: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	created, err := s.scheduleRepo.CreateBlockedDate(ctx, req.ToDomainBlockedDate())
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDuplicateDate) {
			s.logger.Warn("AddBlockedDate: date %s is already blocked", req.Date.Format(domain.DateFormat))
			return nil, ErrDuplicateDate
		}
		s.logger.Error("AddBlockedDate: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddBlockedDate - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("AddBlockedDate: successfully blocked date id=%d", created.ID)
	return models.FromDomainBlockedDate(created), nil
}

// RemoveBlockedDate снимает блокировку даты
func (s *Service) RemoveBlockedDate(ctx context.Context, id int64) error {
	s.logger.Info("RemoveBlockedDate: id=%d", id)

	if err := s.scheduleRepo.DeleteBlockedDate(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrBlockedDateNotFound) {
			s.logger.Warn("RemoveBlockedDate: blocked date id=%d not found", id)
			return ErrBlockedDateNotFound
		}
		s.logger.Error("RemoveBlockedDate: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: RemoveBlockedDate - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("RemoveBlockedDate: successfully removed blocked date id=%d", id)
	return nil
}

// UpdatePolicy обновляет единственную строку политики бронирования
func (s *Service) UpdatePolicy(ctx context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("UpdatePolicy: maxDuration=%.1fh, minNotice=%.1fh, advanceLimit=%dd",
		req.MaxBookingDurationHours, req.MinBookingNoticeHours, req.BookingAdvanceLimitDays)

	if err := validatePolicy(req); err != nil {
		s.logger.Warn("UpdatePolicy: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.scheduleRepo.UpdatePolicy(ctx, req.ToDomainPolicy())
	if err != nil {
		s.logger.Error("UpdatePolicy: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdatePolicy - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("UpdatePolicy: successfully updated policy")
	resp := models.FromDomainPolicy(updated)
	return &resp, nil
}

// validatePolicy проверяет диапазоны параметров политики
func validatePolicy(req *models.UpdatePolicyRequest) error {
	if req.MaxBookingDurationHours < domain.MinPolicyDurationHours || req.MaxBookingDurationHours > domain.MaxPolicyDurationHours {
		return fmt.Errorf("%w: maxBookingDurationHours must be between %.1f and %.1f",
			ErrInvalidInput, domain.MinPolicyDurationHours, domain.MaxPolicyDurationHours)
	}

	if req.MinBookingNoticeHours < 0 || req.MinBookingNoticeHours > domain.MaxPolicyNoticeHours {
		return fmt.Errorf("%w: minBookingNoticeHours must be between 0 and %.1f",
			ErrInvalidInput, domain.MaxPolicyNoticeHours)
	}

	if req.BookingAdvanceLimitDays < 1 || req.BookingAdvanceLimitDays > domain.MaxAdvanceLimitDays {
		return fmt.Errorf("%w: bookingAdvanceLimitDays must be between 1 and %d",
			ErrInvalidInput, domain.MaxAdvanceLimitDays)
	}

	return nil
}
