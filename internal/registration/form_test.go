package registration

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/m3rciful/regbot/core/telegram/state"
)

type fakeRepo struct {
	regs       map[int64]Registration
	upserts    int
	failUpsert bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{regs: make(map[int64]Registration)}
}

func (f *fakeRepo) Upsert(_ context.Context, reg *Registration) error {
	if f.failUpsert {
		return errors.New("disk full")
	}
	f.upserts++
	stored := *reg
	if prev, ok := f.regs[reg.TelegramID]; ok {
		stored.CreatedAt = prev.CreatedAt
	}
	f.regs[reg.TelegramID] = stored
	return nil
}

func (f *fakeRepo) GetByTelegramID(_ context.Context, telegramID int64) (*Registration, error) {
	reg, ok := f.regs[telegramID]
	if !ok {
		return nil, ErrNotFound
	}
	return &reg, nil
}

func (f *fakeRepo) Count(context.Context) (int, error)         { return len(f.regs), nil }
func (f *fakeRepo) ListAll(context.Context) ([]Registration, error) { return nil, nil }
func (f *fakeRepo) Close() error                               { return nil }

type FormSuite struct {
	suite.Suite

	states state.Manager
	repo   *fakeRepo
	form   *Form
}

func (s *FormSuite) SetupTest() {
	s.states = state.NewMemoryManager()
	s.repo = newFakeRepo()
	s.form = NewForm(s.states, NewService(s.repo))
}

func TestFormSuite(t *testing.T) {
	suite.Run(t, new(FormSuite))
}

const testUser int64 = 100500

func (s *FormSuite) begin() {
	s.states.Reset(testUser)
	s.states.SetState(testUser, StateAwaitingFirstName)
}

func (s *FormSuite) advance(text string) []string {
	return s.form.advance(context.Background(), testUser, text)
}

func (s *FormSuite) TestIdleTextAsksForStart() {
	replies := s.advance("привет")
	s.Require().Equal([]string{replyUseStart}, replies)
	s.Equal(state.StateIdle, s.states.GetState(testUser))
}

func (s *FormSuite) TestLinearFlow() {
	s.begin()

	steps := []struct {
		answer string
		prompt string
		next   state.State
	}{
		{"Анна", promptLastName, StateAwaitingLastName},
		{"Петрова", promptPhone, StateAwaitingPhone},
		{"+7 (912) 345-67-89", promptCompany, StateAwaitingCompany},
		{"ООО Ромашка", promptActivityType, StateAwaitingActivityType},
	}
	for _, step := range steps {
		s.Run(step.answer, func() {
			replies := s.advance(step.answer)
			s.Require().Equal([]string{step.prompt}, replies)
			s.Equal(step.next, s.states.GetState(testUser))
		})
	}

	replies := s.advance("Консалтинг")
	s.Require().Len(replies, 1)
	s.Contains(replies[0], "Анна, записали вас на вебинар")
	s.Equal(StateCompleted, s.states.GetState(testUser))

	stored, err := s.repo.GetByTelegramID(context.Background(), testUser)
	s.Require().NoError(err)
	s.Equal("Анна", stored.FirstName)
	s.Equal("Петрова", stored.LastName)
	s.Equal("+7 (912) 345-67-89", stored.Phone)
	s.Equal("ООО Ромашка", stored.Company)
	s.Equal("Консалтинг", stored.ActivityType)
}

func (s *FormSuite) TestRejectionKeepsState() {
	s.begin()

	replies := s.advance("A")
	s.Require().Len(replies, 1)
	s.Contains(replies[0], "минимум 2 символа")
	s.Equal(StateAwaitingFirstName, s.states.GetState(testUser))
	s.Empty(s.states.Draft(testUser))

	// A valid retry continues from the same question.
	replies = s.advance("Анна")
	s.Require().Equal([]string{promptLastName}, replies)
}

func (s *FormSuite) TestInvalidPhoneRepeatsQuestion() {
	s.begin()
	s.advance("Анна")
	s.advance("Петрова")

	replies := s.advance("12345")
	s.Require().Len(replies, 1)
	s.Contains(replies[0], "корректный номер телефона")
	s.Equal(StateAwaitingPhone, s.states.GetState(testUser))
}

func (s *FormSuite) TestCompletedSessionAnswersWithHint() {
	s.complete()

	replies := s.advance("ещё текст")
	s.Require().Equal([]string{replyAlreadyRegistered}, replies)
	s.Equal(1, s.repo.upserts)
}

func (s *FormSuite) TestReRegistrationOverwrites() {
	s.complete()

	// Simulate /start and run the questionnaire again with new answers.
	s.begin()
	s.advance("Мария")
	s.advance("Иванова")
	s.advance("89123456789")
	s.advance("ИП Иванова")
	replies := s.advance("Дизайн")
	s.Require().Len(replies, 1)
	s.Contains(replies[0], "Мария")

	s.Equal(2, s.repo.upserts)
	stored, err := s.repo.GetByTelegramID(context.Background(), testUser)
	s.Require().NoError(err)
	s.Equal("Мария", stored.FirstName)
}

func (s *FormSuite) TestPersistenceFailureRevertsToLastQuestion() {
	s.begin()
	s.advance("Анна")
	s.advance("Петрова")
	s.advance("+7 (912) 345-67-89")
	s.advance("ООО Ромашка")

	s.repo.failUpsert = true
	replies := s.advance("Консалтинг")
	s.Require().Equal([]string{replySaveFailed}, replies)
	s.Equal(StateAwaitingActivityType, s.states.GetState(testUser))

	// Retrying the final answer succeeds once storage recovers.
	s.repo.failUpsert = false
	replies = s.advance("Консалтинг")
	s.Require().Len(replies, 1)
	s.True(strings.HasPrefix(replies[0], "✅"))
	s.Equal(StateCompleted, s.states.GetState(testUser))
}

func (s *FormSuite) TestInProgress() {
	s.False(s.form.InProgress(testUser))
	s.begin()
	s.True(s.form.InProgress(testUser))
	s.advance("Анна")
	s.True(s.form.InProgress(testUser))
	s.complete()
	// Completed still routes to the form so it can answer with a hint.
	s.True(s.form.InProgress(testUser))
}

func (s *FormSuite) complete() {
	s.begin()
	s.advance("Анна")
	s.advance("Петрова")
	s.advance("+7 (912) 345-67-89")
	s.advance("ООО Ромашка")
	s.advance("Консалтинг")
	s.Require().Equal(StateCompleted, s.states.GetState(testUser))
}
