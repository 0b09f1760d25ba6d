package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/hubtracker/scheduling-service/internal/domain"
	appointmentRepo "github.com/hubtracker/scheduling-service/internal/infra/storage/appointment"
	scheduleRepo "github.com/hubtracker/scheduling-service/internal/infra/storage/schedule"
	"github.com/hubtracker/scheduling-service/internal/service/appointments/models"
	"github.com/hubtracker/scheduling-service/pkg/localtime"
)

// Service сервис для работы с существующими бронированиями
type Service struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	txManager       TransactionManager
	converter       *localtime.Converter
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	converter *localtime.Converter,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		txManager:       txManager,
		converter:       converter,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Пользователь видит только свои бронирования, администратор - любые.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, isAdmin bool) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	if appt.UserID != userID && !isAdmin {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appt, s.converter), nil
}

// GetUserAppointments получает историю бронирований пользователя.
// Опционально фильтрует по статусу.
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for user=%d, status=%v", req.UserID, req.Status)

	if req.UserID != req.RequesterID && !req.IsAdmin {
		s.logger.Warn("GetUserAppointments: access denied for user=%d to history of user=%d", req.RequesterID, req.UserID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserAppointments: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetUserAppointments: fetched %d appointments for user=%d", len(appointments), req.UserID)
	return models.FromDomainAppointmentList(appointments, s.converter), nil
}

// GetEquipmentAppointments получает бронирования оборудования с гибкой
// фильтрацией по периоду и статусу. Доступно только администраторам,
// роль проверяет маршрут.
func (s *Service) GetEquipmentAppointments(ctx context.Context, req *models.GetEquipmentAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetEquipmentAppointments: fetching appointments for equipment=%d", req.EquipmentID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetEquipmentAppointments: invalid filter for equipment=%d: %v", req.EquipmentID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByEquipmentWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetEquipmentAppointments: repository error for equipment=%d: %v", req.EquipmentID, err)
		return nil, fmt.Errorf("%w: GetEquipmentAppointments - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetEquipmentAppointments: fetched %d appointments for equipment=%d", len(appointments), req.EquipmentID)
	return models.FromDomainAppointmentList(appointments, s.converter), nil
}

// Cancel отменяет бронирование. Отмена терминальна и идемпотентности не
// имеет: повторная отмена возвращает ErrAlreadyCancelled, поля записи не
// меняются.
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", appointmentID, req.UserID)

	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
	}

	if appt.UserID != req.UserID && !req.IsAdmin {
		s.logger.Warn("Cancel: access denied for user=%d to appointment id=%d", req.UserID, appointmentID)
		return ErrAccessDenied
	}

	if appt.IsCancelled() {
		s.logger.Warn("Cancel: appointment id=%d is already cancelled", appointmentID)
		return ErrAlreadyCancelled
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, domain.StatusCancelled); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", appointmentID)
	return nil
}

// Approve подтверждает ожидающее бронирование (только pending -> approved)
func (s *Service) Approve(ctx context.Context, appointmentID int64) error {
	s.logger.Info("Approve: approving appointment id=%d", appointmentID)

	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Approve: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Approve: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Approve - repository error: %w", ErrInternal, err)
	}

	if !appt.CanBeApproved() {
		s.logger.Warn("Approve: appointment id=%d cannot be approved, status=%s", appointmentID, appt.Status)
		return ErrCannotApprove
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, domain.StatusApproved); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Approve: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Approve - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Approve: successfully approved appointment id=%d", appointmentID)
	return nil
}

// Update полностью редактирует бронирование (административная операция).
// Новый интервал повторно проверяется на рабочие часы и пересечения в
// сериализуемой транзакции, как при создании.
func (s *Service) Update(ctx context.Context, appointmentID int64, req *models.UpdateAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Update: updating appointment id=%d", appointmentID)

	if err := validateUpdateRequest(req); err != nil {
		s.logger.Warn("Update: validation failed for appointment id=%d: %v", appointmentID, err)
		return nil, err
	}

	startUTC, err := s.converter.ToUTC(req.Date, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to convert start time: %w", ErrInternal, err)
	}
	endUTC, err := s.converter.ToUTC(req.Date, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to convert end time: %w", ErrInternal, err)
	}

	var result *domain.Appointment

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt, err := s.appointmentRepo.GetByID(txCtx, appointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("Update: appointment id=%d not found", appointmentID)
				return ErrAppointmentNotFound
			}
			s.logger.Error("Update: repository error for appointment id=%d: %v", appointmentID, err)
			return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}

		// Рабочие часы обязаны покрывать новый интервал целиком
		hours, err := s.scheduleRepo.GetOperatingHours(txCtx, domain.DayOfWeek(req.Date))
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrHoursNotFound) {
				s.logger.Warn("Update: hub is closed on %s", req.Date.Format(domain.DateFormat))
				return ErrOutsideOperatingHours
			}
			s.logger.Error("Update: failed to get operating hours: %v", err)
			return fmt.Errorf("%w: failed to get operating hours: %w", ErrInternal, err)
		}
		if !hours.Contains(req.StartTime, req.EndTime) {
			s.logger.Warn("Update: interval %s-%s outside operating hours", req.StartTime, req.EndTime)
			return ErrOutsideOperatingHours
		}

		// Проверяем пересечения, исключая редактируемую запись
		conflicts, err := s.appointmentRepo.GetByEquipmentWithFilter(txCtx, domain.EquipmentAppointmentsFilter{
			EquipmentID: appt.EquipmentID,
			From:        &startUTC,
			To:          &endUTC,
		})
		if err != nil {
			s.logger.Error("Update: failed to check conflicts: %v", err)
			return fmt.Errorf("%w: failed to check conflicts: %w", ErrInternal, err)
		}
		for _, conflict := range conflicts {
			if conflict.ID != appointmentID {
				s.logger.Warn("Update: slot conflict with appointment id=%d", conflict.ID)
				return ErrSlotConflict
			}
		}

		appt.StartTime = startUTC
		appt.EndTime = endUTC
		if req.Status != nil {
			status, err := models.ToDomainStatus(*req.Status)
			if err != nil {
				return fmt.Errorf("%w: invalid status", ErrInvalidInput)
			}
			appt.Status = status
		}
		if req.Purpose != nil {
			appt.Purpose = req.Purpose
		}
		if req.Notes != nil {
			appt.Notes = req.Notes
		}

		updated, err := s.appointmentRepo.Update(txCtx, appointmentID, appt)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			s.logger.Error("Update: repository error for appointment id=%d: %v", appointmentID, err)
			return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated appointment id=%d", appointmentID)
	return models.FromDomainAppointment(result, s.converter), nil
}

// Delete удаляет бронирование без возможности восстановления
// (административная операция)
func (s *Service) Delete(ctx context.Context, appointmentID int64) error {
	s.logger.Info("Delete: deleting appointment id=%d", appointmentID)

	if err := s.appointmentRepo.Delete(ctx, appointmentID); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted appointment id=%d", appointmentID)
	return nil
}

// validateUpdateRequest валидирует административное редактирование
func validateUpdateRequest(req *models.UpdateAppointmentRequest) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	startMinutes, err := req.StartTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	endMinutes, err := req.EndTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if startMinutes%domain.SlotStepMinutes != 0 || endMinutes%domain.SlotStepMinutes != 0 {
		return fmt.Errorf("%w: times must fall on the %d-minute grid", ErrInvalidInput, domain.SlotStepMinutes)
	}

	if req.Purpose != nil && len(*req.Purpose) > domain.MaxPurposeLength {
		return fmt.Errorf("%w: purpose exceeds %d characters", ErrInvalidInput, domain.MaxPurposeLength)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
