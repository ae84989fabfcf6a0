package registration

import (
	"context"
	"fmt"

	"github.com/m3rciful/regbot/core/logger"
	tghelpers "github.com/m3rciful/regbot/core/telegram/helpers"
	"github.com/m3rciful/regbot/core/telegram/state"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// Questionnaire states. The zero state is state.StateIdle from the core.
const (
	StateAwaitingFirstName    state.State = "waiting_firstname"
	StateAwaitingLastName     state.State = "waiting_lastname"
	StateAwaitingPhone        state.State = "waiting_phone"
	StateAwaitingCompany      state.State = "waiting_company"
	StateAwaitingActivityType state.State = "waiting_activity_type"
	StateCompleted            state.State = "completed"
)

const (
	promptFirstName    = "<b>Укажите ваше имя:</b>"
	promptLastName     = "<b>Укажите вашу фамилию:</b>"
	promptPhone        = "<b>Укажите ваш номер телефона:</b>"
	promptCompany      = "<b>Укажите название вашей компании:</b>"
	promptActivityType = "<b>Укажите вашу сферу деятельности:</b>"

	replyAlreadyRegistered = "Вы уже зарегистрированы! Для повторной регистрации используйте команду /start"
	replyUseStart          = "Для начала регистрации используйте команду /start"
	replySaveFailed        = "Произошла ошибка при сохранении. Попробуйте позже."

	helpText = "📖 Справка по командам:\n\n" +
		"/start - Начать регистрацию на вебинар\n" +
		"/help - Показать эту справку"
)

// fieldFor maps an awaiting state to the field that state collects.
func fieldFor(st state.State) (Field, bool) {
	switch st {
	case StateAwaitingFirstName:
		return FieldFirstName, true
	case StateAwaitingLastName:
		return FieldLastName, true
	case StateAwaitingPhone:
		return FieldPhone, true
	case StateAwaitingCompany:
		return FieldCompany, true
	case StateAwaitingActivityType:
		return FieldActivityType, true
	}
	return "", false
}

// transition returns the follow-up state and the prompt for it after a field
// was accepted in the given state.
func transition(st state.State) (state.State, string) {
	switch st {
	case StateAwaitingFirstName:
		return StateAwaitingLastName, promptLastName
	case StateAwaitingLastName:
		return StateAwaitingPhone, promptPhone
	case StateAwaitingPhone:
		return StateAwaitingCompany, promptCompany
	case StateAwaitingCompany:
		return StateAwaitingActivityType, promptActivityType
	case StateAwaitingActivityType:
		return StateCompleted, ""
	}
	return state.StateIdle, ""
}

func summaryText(firstName string) string {
	return fmt.Sprintf(
		"✅ <b>%s, записали вас на вебинар.</b>\n\n"+
			"Он стартует 30 октября в 10:00 по МСК. Мы пришлем сообщение с напоминанием и ссылкой на вебинар заранее, поэтому не отключайте, пожалуйста, уведомления.\n\n"+
			"До встречи!\n\n",
		firstName,
	)
}

// Form drives the per-user registration conversation. It consumes plain text
// answers, validates them, accumulates a draft in the session store, and
// persists the finished questionnaire through the service.
type Form struct {
	states state.Manager
	svc    *Service
}

// NewForm wires the conversation over the given session store and service.
func NewForm(states state.Manager, svc *Service) *Form {
	return &Form{states: states, svc: svc}
}

// InProgress reports whether text from the user should be routed to the form.
// A completed session still counts: the form answers it with a hint instead
// of letting the text fall through to command matching.
func (f *Form) InProgress(userID int64) bool {
	return f.states.GetState(userID) != state.StateIdle
}

// Start handles /start: any previous session state and draft are discarded
// and the questionnaire begins from the first question.
func (f *Form) Start(c tele.Context) error {
	userID := c.Sender().ID
	f.states.Reset(userID)
	f.states.SetState(userID, StateAwaitingFirstName)

	ctx := tghelpers.BuildContext(c)
	logger.Debug(ctx, "fsm", "form.start",
		slog.String("state", string(StateAwaitingFirstName)),
	)
	return tghelpers.SendHTML(c, promptFirstName)
}

// Help handles /help.
func (f *Form) Help(c tele.Context) error {
	return tghelpers.SendText(c, helpText)
}

// Fallback answers text from users without an active session.
func (f *Form) Fallback(c tele.Context) error {
	return tghelpers.SendText(c, replyUseStart)
}

// ManagerHandler consumes one text answer for a user with an active session.
func (f *Form) ManagerHandler(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	replies := f.advance(ctx, c.Sender().ID, c.Text())
	for _, r := range replies {
		if err := tghelpers.SendHTML(c, r); err != nil {
			return err
		}
	}
	return nil
}

// advance applies one answer to the session and returns the replies to send.
func (f *Form) advance(ctx context.Context, userID int64, text string) []string {
	st := f.states.GetState(userID)

	switch st {
	case state.StateIdle:
		return []string{replyUseStart}
	case StateCompleted:
		return []string{replyAlreadyRegistered}
	}

	field, ok := fieldFor(st)
	if !ok {
		// Unknown state, recover by restarting the session.
		f.states.Reset(userID)
		logger.Warn(ctx, "fsm", "form.state.unknown",
			slog.String("state", string(st)),
		)
		return []string{replyUseStart}
	}

	value, verr := Validate(field, text)
	if verr != nil {
		logger.Debug(ctx, "fsm", "form.step",
			slog.String("state", string(st)),
			slog.String("field", string(field)),
			slog.String("outcome", "rejected"),
		)
		return []string{verr.Message}
	}

	f.states.SetField(userID, string(field), value)
	next, prompt := transition(st)

	if next != StateCompleted {
		f.states.SetState(userID, next)
		logger.Debug(ctx, "fsm", "form.step",
			slog.String("state", string(next)),
			slog.String("field", string(field)),
			slog.String("outcome", "accepted"),
		)
		return []string{prompt}
	}

	return []string{f.commit(ctx, userID)}
}

// commit persists the finished draft. On storage failure the session stays on
// the last question so the user can retry by re-sending the final answer.
func (f *Form) commit(ctx context.Context, userID int64) string {
	draft := f.states.Draft(userID)
	reg := &Registration{
		TelegramID:   userID,
		FirstName:    draft[string(FieldFirstName)],
		LastName:     draft[string(FieldLastName)],
		Phone:        draft[string(FieldPhone)],
		Company:      draft[string(FieldCompany)],
		ActivityType: draft[string(FieldActivityType)],
	}

	if err := f.svc.Register(ctx, reg); err != nil {
		f.states.SetState(userID, StateAwaitingActivityType)
		return replySaveFailed
	}

	f.states.SetState(userID, StateCompleted)
	logger.Info(ctx, "fsm", "form.completed",
		slog.String("state", string(StateCompleted)),
	)
	return summaryText(reg.FirstName)
}
