package models

import "errors"

// NotificationLevel orders user-visible severities. All notifications are
// non-modal and auto-dismissing; none block or crash the interface.
type NotificationLevel string

const (
	NotifyInfo     NotificationLevel = "info"
	NotifySuccess  NotificationLevel = "success"
	NotifyWarning  NotificationLevel = "warning"
	NotifyError    NotificationLevel = "error"
	NotifyCritical NotificationLevel = "critical"
)

type Notification struct {
	Level     NotificationLevel `json:"level"`
	Message   string            `json:"message"`
	TimeoutMS int               `json:"timeout_ms"`
}

const defaultNotificationTimeoutMS = 5000

func NewNotification(level NotificationLevel, message string) Notification {
	return Notification{Level: level, Message: message, TimeoutMS: defaultNotificationTimeoutMS}
}

// NotificationFor maps the error taxonomy to a user-facing notification.
func NotificationFor(err error) Notification {
	var (
		validation *ValidationError
		partial    *PartialSuccessError
		payFailed  *PaymentFailedError
		reqFailed  *RequestFailedError
	)
	switch {
	case errors.As(err, &partial):
		return NewNotification(NotifyCritical,
			"Payment succeeded but the booking could not be recorded. Please contact support with payment id "+partial.PaymentID+".")
	case errors.Is(err, ErrPaymentCancelled):
		return NewNotification(NotifyWarning, "Payment was cancelled. Please try again.")
	case errors.As(err, &payFailed):
		return NewNotification(NotifyError, "Payment failed: "+payFailed.Reason)
	case errors.Is(err, ErrItemNotFound):
		return NewNotification(NotifyError, "Item data not found. Please search again.")
	case errors.As(err, &validation):
		return NewNotification(NotifyError, "Please fill in all required fields")
	case errors.Is(err, ErrSearchInFlight):
		return NewNotification(NotifyInfo, "A search is already running, showing its results.")
	case errors.As(err, &reqFailed):
		return NewNotification(NotifyError, "Something went wrong talking to the server. Please try again.")
	case err != nil:
		return NewNotification(NotifyError, "Something went wrong. Please try again.")
	}
	return NewNotification(NotifyInfo, "")
}
