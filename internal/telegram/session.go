package telegram

import (
	"strconv"
	"strings"
	"sync"

	"github.com/elp-logistics/market-radar/internal/storage"
)

// Questionnaire steps in the order they are asked.
const (
	StepBudgetMin = iota
	StepBudgetMax
	StepDistrict
	StepMoveIn
	StepPropertyType
	StepOccupants
	StepPets
	StepParking
	StepDone
)

var questions = map[int]string{
	StepBudgetMin:    "Минимальный бюджет, тг? Отправьте «-», если не важно.",
	StepBudgetMax:    "Максимальный бюджет, тг? Отправьте «-», если не важно.",
	StepDistrict:     "Какой район интересует?",
	StepMoveIn:       "Когда планируете заезд?",
	StepPropertyType: "Тип недвижимости (квартира, дом, офис)?",
	StepOccupants:    "Сколько человек будет проживать?",
	StepPets:         "Есть питомцы? (да/нет)",
	StepParking:      "Нужна парковка? (да/нет)",
}

const doneReply = "Анкета сохранена. Используйте /match для подбора вариантов."

// FirstQuestion opens the questionnaire; callers outside the bot (the
// CLI prompt flow) drive Advance themselves.
func FirstQuestion() string {
	return questions[StepBudgetMin]
}

// Session is the in-progress questionnaire for one chat. The partial
// profile lives only here until the final step persists it wholesale.
type Session struct {
	Step    int
	Profile storage.TenantProfile
}

// Advance applies one tenant answer. It is a pure transition: it never
// touches shared state, the reply is either a validation retry of the
// same question or the next one, and done turns true only once the
// profile is complete.
func Advance(s Session, input string) (next Session, reply string, done bool) {
	input = strings.TrimSpace(input)

	switch s.Step {
	case StepBudgetMin, StepBudgetMax:
		value := 0
		if input != "-" {
			parsed, err := strconv.Atoi(input)
			if err != nil || parsed < 0 {
				return s, "Нужно число или «-». " + questions[s.Step], false
			}
			value = parsed
		}
		if s.Step == StepBudgetMin {
			s.Profile.BudgetMin = value
		} else {
			s.Profile.BudgetMax = value
		}
	case StepDistrict:
		s.Profile.District = input
	case StepMoveIn:
		s.Profile.MoveIn = input
	case StepPropertyType:
		s.Profile.PropertyType = input
	case StepOccupants:
		parsed, err := strconv.Atoi(input)
		if err != nil || parsed <= 0 {
			return s, "Нужно положительное число. " + questions[s.Step], false
		}
		s.Profile.Occupants = parsed
	case StepPets, StepParking:
		answer, ok := normalizeYesNo(input)
		if !ok {
			return s, "Ответьте «да» или «нет». " + questions[s.Step], false
		}
		if s.Step == StepPets {
			s.Profile.Pets = answer
		} else {
			s.Profile.Parking = answer
		}
	default:
		return s, doneReply, true
	}

	s.Step++
	if s.Step == StepDone {
		return s, doneReply, true
	}
	return s, questions[s.Step], false
}

func normalizeYesNo(input string) (string, bool) {
	lower := strings.ToLower(input)
	switch {
	case strings.HasPrefix(lower, "д") || strings.HasPrefix(lower, "y"):
		return storage.AnswerYes, true
	case strings.HasPrefix(lower, "н") || strings.HasPrefix(lower, "n"):
		return storage.AnswerNo, true
	}
	return "", false
}

// Sessions holds the per-chat questionnaire state for the lifetime of
// the process.
type Sessions struct {
	mu sync.Mutex
	m  map[int64]Session
}

func NewSessions() *Sessions {
	return &Sessions{m: make(map[int64]Session)}
}

// Start begins (or restarts) the questionnaire for a chat and returns
// the first question.
func (s *Sessions) Start(chatID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[chatID] = Session{Step: StepBudgetMin}
	return questions[StepBudgetMin]
}

// Active reports whether a questionnaire is in progress for the chat.
func (s *Sessions) Active(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.m[chatID]
	return ok
}

// Advance feeds one answer into the chat's session. When the
// questionnaire completes, the finished profile is returned and the
// session is dropped.
func (s *Sessions) Advance(chatID int64, input string) (reply string, profile *storage.TenantProfile, done bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.m[chatID]
	if !ok {
		return "", nil, false
	}

	next, reply, done := Advance(session, input)
	if done {
		delete(s.m, chatID)
		next.Profile.ChatID = chatID
		return reply, &next.Profile, true
	}
	s.m[chatID] = next
	return reply, nil, false
}

// Drop discards any in-progress session for the chat.
func (s *Sessions) Drop(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, chatID)
}
