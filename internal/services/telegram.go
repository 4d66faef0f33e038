package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/medqueue-uz/medqueue-api/internal/models"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramNotifier posts one-line-of-business notifications to a fixed
// Telegram chat. Every delivery problem reduces to a false return and a log
// entry; callers never see an error.
type TelegramNotifier struct {
	token   string
	chatID  string
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewTelegramNotifier builds a notifier for the given bot credential and
// recipient chat. Empty values are tolerated; sends will simply report false.
func NewTelegramNotifier(token, chatID string, logger zerolog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		token:   token,
		chatID:  chatID,
		baseURL: telegramAPIBase,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

// SendAppointmentNotification reports a freshly booked appointment.
func (t *TelegramNotifier) SendAppointmentNotification(apt *models.Appointment) bool {
	doctorName := apt.DoctorName
	if doctorName == "" {
		doctorName = "Shifokor aniqlanmadi"
	}
	specialty := apt.Specialty
	if specialty == "" {
		specialty = "N/A"
	}
	department := apt.Department
	if department == "" {
		department = "Bo'lim aniqlanmadi"
	}

	message := fmt.Sprintf(`✅ Navbatingiz qabul qilindi!

🏥 Yangi navbat olindi!

👤 %s

📞 %s

🧑‍⚕️ %s (%s)

🏢 %s

📅 %s

🕒 %s`,
		apt.FullName, apt.Phone, doctorName, specialty, department,
		formatDate(apt.Date), apt.Time)

	return t.send(message)
}

// SendComplaintNotification reports a newly filed complaint. The phone line
// is omitted when the complaint has no phone.
func (t *TelegramNotifier) SendComplaintNotification(cpl *models.Complaint) bool {
	phoneLine := ""
	if cpl.Phone != "" {
		phoneLine = fmt.Sprintf("📞 %s\n", cpl.Phone)
	}

	message := fmt.Sprintf(`📢 Yangi shikoyat!

👤 %s
%s📝 %s
📅 %s`,
		cpl.Name, phoneLine, cpl.Message,
		cpl.CreatedAt.Format("02/01/2006, 15:04:05"))

	return t.send(message)
}

// SendServiceAppointmentNotification reports a new service booking.
func (t *TelegramNotifier) SendServiceAppointmentNotification(svc *models.ServiceAppointment) bool {
	message := fmt.Sprintf(`🛠️ Yangi xizmat navbati olindi!

👤 %s

📞 %s

🔧 %s

📅 %s

🕒 %s`,
		svc.PatientName, svc.PatientPhone, svc.ServiceType,
		formatDate(svc.Date), svc.Time)

	return t.send(message)
}

func (t *TelegramNotifier) send(text string) bool {
	if t.token == "" || t.chatID == "" {
		t.logger.Error().Msg("telegram configuration missing: BOT_TOKEN and/or CHAT_ID not set")
		return false
	}

	// A chat id equal to the numeric prefix of the bot token is the bot's
	// own id: a common setup mistake, and the bot cannot message itself.
	if botID, _, ok := strings.Cut(t.token, ":"); ok && t.chatID == botID {
		t.logger.Error().Str("chatId", t.chatID).Msg("CHAT_ID equals the bot id, refusing to send")
		return false
	}

	payload, err := json.Marshal(map[string]string{
		"chat_id": t.chatID,
		"text":    text,
	})
	if err != nil {
		t.logger.Error().Err(err).Msg("failed to marshal telegram payload")
		return false
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	resp, err := t.client.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		t.logger.Error().Err(err).Msg("failed to reach telegram API")
		return false
	}
	defer resp.Body.Close()

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.logger.Error().Err(err).Msg("failed to decode telegram response")
		return false
	}
	if !result.OK {
		t.logger.Error().Int("status", resp.StatusCode).Str("description", result.Description).
			Msg("telegram API rejected the message")
		return false
	}

	t.logger.Info().Msg("telegram notification sent")
	return true
}

func formatDate(d time.Time) string {
	if d.IsZero() {
		return "N/A"
	}
	return d.Format("02/01/2006")
}
