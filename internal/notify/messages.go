package notify

import "fmt"

func ConfirmationMessage(clientName, style, date, timeSlot string) string {
	return fmt.Sprintf(
		"Hi %s! Your deposit is confirmed and your %s appointment is booked for %s at %s. See you then!",
		clientName, style, date, timeSlot,
	)
}

func ReminderMessage(clientName, style, date, timeSlot string) string {
	return fmt.Sprintf(
		"Hi %s, a quick reminder: your %s appointment is on %s at %s. Reply if you need to reschedule.",
		clientName, style, date, timeSlot,
	)
}
