package notify

import (
	"fmt"
	"os"
	"os/exec"

	"winmatch/pkg/logger"
)

// NotificationType represents the type of notification
type NotificationType int

const (
	Error NotificationType = iota
	Info
)

func (t NotificationType) String() string {
	if t == Error {
		return "ERROR"
	}
	return "INFO"
}

// NotifyService handles desktop notifications for rule transitions
type NotifyService struct {
	log           *logger.Logger
	notifyCommand string
}

// NewNotifyService creates a new notification service
func NewNotifyService(notifyCommand string, log *logger.Logger) *NotifyService {
	return &NotifyService{
		log:           log,
		notifyCommand: notifyCommand,
	}
}

// Show displays a notification of the specified type. A configured command
// wins; otherwise the common desktop tools are tried, then stderr.
func (n *NotifyService) Show(message string, nType NotificationType) error {
	if n == nil {
		return nil
	}
	if n.notifyCommand != "" {
		if err := n.executeNotifyCommand(message, nType); err == nil {
			return nil
		}
		n.log.Warn("Custom notification command failed", "command", n.notifyCommand)
	}

	if err := n.trySystemNotification(message, nType); err == nil {
		return nil
	}

	_, err := fmt.Fprintf(os.Stderr, "[%s] %s\n", nType, message)
	return err
}

func (n *NotifyService) executeNotifyCommand(message string, nType NotificationType) error {
	n.log.Debug("Executing notify command", "command", n.notifyCommand, "type", nType.String())
	cmd := exec.Command("sh", "-c", fmt.Sprintf("%s '%s' '%s'", n.notifyCommand, nType, message))
	return cmd.Run()
}

func (n *NotifyService) trySystemNotification(message string, nType NotificationType) error {
	urgency := "normal"
	if nType == Error {
		urgency = "critical"
	}

	for _, tool := range []string{"notify-send", "dunstify"} {
		if _, err := exec.LookPath(tool); err != nil {
			continue
		}
		cmd := exec.Command(tool, "-u", urgency, "winmatch", message)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}
	return fmt.Errorf("no system notification tool available")
}
