package app

import (
	"context"
	"fmt"
	"strings"

	corebootstrap "github.com/m3rciful/regbot/core/bootstrap"
	corecmd "github.com/m3rciful/regbot/core/cmd"
	coretelegram "github.com/m3rciful/regbot/core/telegram"
	"github.com/m3rciful/regbot/core/telegram/commands"
	tghelpers "github.com/m3rciful/regbot/core/telegram/helpers"
	"github.com/m3rciful/regbot/core/telegram/router"
	"github.com/m3rciful/regbot/core/telegram/state"
	"github.com/m3rciful/regbot/internal/registration"
	"github.com/m3rciful/regbot/internal/storage"

	tele "gopkg.in/telebot.v4"
)

// App holds the assembled bot: storage, service, conversation, and registry.
type App struct {
	cfg      *Config
	repo     registration.Repository
	svc      *registration.Service
	form     *registration.Form
	registry *coretelegram.Registry
}

// Bootstrap initializes infrastructure and wires the bot handlers.
func Bootstrap(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg, ok := carrier.(*Config)
	if !ok {
		return nil, fmt.Errorf("app: unexpected config type %T", carrier)
	}

	res, err := corebootstrap.Run(corebootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	repo := storage.NewRegistrationRepo(res.DB)
	svc := registration.NewService(repo)
	form := registration.NewForm(state.NewMemoryManager(), svc)

	a := &App{
		cfg:      cfg,
		repo:     repo,
		svc:      svc,
		form:     form,
		registry: coretelegram.NewRegistry(),
	}
	a.registerCommands()

	return a, nil
}

func (a *App) registerCommands() {
	a.registry.RegisterCommand("/start", commands.Command{
		Handler:     a.form.Start,
		Description: "Начать регистрацию на вебинар",
	})
	a.registry.RegisterCommand("/help", commands.Command{
		Handler:     a.form.Help,
		Description: "Показать справку",
	})
	a.registry.RegisterCommand("/stats", commands.Command{
		Handler:     a.handleStats,
		Description: "Количество регистраций",
		AdminOnly:   true,
		Hidden:      true,
	})
	a.registry.RegisterCommand("/list", commands.Command{
		Handler:     a.handleList,
		Description: "Список регистраций",
		AdminOnly:   true,
		Hidden:      true,
	})
	a.registry.SetTextFallback(a.form.Fallback)
}

func (a *App) handleStats(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	n, err := a.svc.Count(ctx)
	if err != nil {
		return tghelpers.SendText(c, "Не удалось получить статистику. Попробуйте позже.")
	}
	return tghelpers.SendHTML(c, fmt.Sprintf("📊 Всего регистраций: <b>%d</b>", n))
}

func (a *App) handleList(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	regs, err := a.svc.List(ctx)
	if err != nil {
		return tghelpers.SendText(c, "Не удалось получить список. Попробуйте позже.")
	}
	if len(regs) == 0 {
		return tghelpers.SendText(c, "Регистраций пока нет.")
	}

	// Telegram caps messages at 4096 chars; show a bounded preview.
	const maxListed = 50
	shown := regs
	if len(shown) > maxListed {
		shown = shown[:maxListed]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 <b>Регистрации (%d)</b>\n\n", len(regs))
	for i, r := range shown {
		fmt.Fprintf(&b, "%d. %s %s — %s — %s (%s)\n",
			i+1, r.FirstName, r.LastName, r.Phone, r.Company,
			r.CreatedAt.Format("02.01.2006"),
		)
	}
	if rest := len(regs) - len(shown); rest > 0 {
		fmt.Fprintf(&b, "\n… и ещё %d", rest)
	}
	return tghelpers.SendHTML(c, b.String())
}

// TelegramRunOptions implements cmd.TelegramApp.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	cfg := a.cfg.CoreConfig()

	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{
		AdminID: cfg.Telegram.AdminID,
	})
	routes = append(routes, router.TextRoutes(a.form, a.registry, router.TextOptions{})...)

	return coretelegram.RunOptions{
		Config:      cfg,
		Registry:    a.registry,
		Middlewares: coretelegram.DefaultMiddlewares(cfg, nil),
		Routes:      routes,
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			return a.repo.Close()
		},
	}, nil
}
