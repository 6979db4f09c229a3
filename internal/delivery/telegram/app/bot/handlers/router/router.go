// internal/delivery/telegram/app/bot/handlers/router/router.go
package router

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers"
	"entry-zone-bot/pkg/logger"
)

// ErrHandlerNotFound - для текста нет хэндлера
var ErrHandlerNotFound = errors.New("handler not found")

// routerImpl реализация Router
type routerImpl struct {
	commands map[string]handlers.Handler // "/start"
	buttons  map[string]handlers.Handler // "👀 VER AHORA"
}

// NewRouter создает новый роутер
func NewRouter() Router {
	return &routerImpl{
		commands: make(map[string]handlers.Handler),
		buttons:  make(map[string]handlers.Handler),
	}
}

// RegisterHandler регистрирует хэндлер (использует GetCommand())
func (r *routerImpl) RegisterHandler(handler handlers.Handler) {
	command := handler.GetCommand()

	if handler.GetType() == handlers.TypeCommand {
		command = "/" + strings.TrimPrefix(command, "/")
		r.commands[strings.ToLower(command)] = handler
	} else {
		r.buttons[command] = handler
	}

	logger.Debug("Зарегистрирован хэндлер: %s для %s: %s",
		handler.GetName(), handler.GetType(), command)
}

// RegisterButton регистрирует хэндлер на точный текст кнопки
func (r *routerImpl) RegisterButton(text string, handler handlers.Handler) {
	r.buttons[text] = handler
	logger.Debug("Зарегистрирована кнопка: %s → %s", text, handler.GetName())
}

// Handle находит хэндлер по тексту и выполняет его.
// Кнопки сравниваются точно, команды - по первому слову без "@BotName".
func (r *routerImpl) Handle(ctx context.Context, text string, params handlers.HandlerParams) (handlers.HandlerResult, error) {
	if handler, exists := r.buttons[text]; exists {
		params.Text = text
		return r.executeHandler(ctx, handler, text, params)
	}

	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "/") {
		return handlers.HandlerResult{}, fmt.Errorf("%w: %q", ErrHandlerNotFound, text)
	}

	fields := strings.Fields(trimmed)
	command := strings.ToLower(fields[0])
	if at := strings.Index(command, "@"); at > 0 {
		command = command[:at]
	}

	handler, exists := r.commands[command]
	if !exists {
		return handlers.HandlerResult{}, fmt.Errorf("%w: %q", ErrHandlerNotFound, command)
	}

	params.Text = text
	params.Args = fields[1:]
	return r.executeHandler(ctx, handler, command, params)
}

// executeHandler выполняет обработчик
func (r *routerImpl) executeHandler(ctx context.Context, handler handlers.Handler, command string, params handlers.HandlerParams) (handlers.HandlerResult, error) {
	logger.Debug("Вызов хэндлера: %s для: %s", handler.GetName(), command)

	result, err := handler.Execute(ctx, params)
	if err != nil {
		logger.Error("Ошибка в хэндлере %s для %s: %v", handler.GetName(), command, err)
		return handlers.HandlerResult{}, err
	}

	return result, nil
}

// GetHandler возвращает хэндлер по команде или тексту кнопки
func (r *routerImpl) GetHandler(text string) (handlers.Handler, bool) {
	if handler, ok := r.buttons[text]; ok {
		return handler, true
	}
	handler, ok := r.commands[strings.ToLower(text)]
	return handler, ok
}

// GetCommands возвращает список команд (с /), отсортированный
func (r *routerImpl) GetCommands() []string {
	commands := make([]string, 0, len(r.commands))
	for cmd := range r.commands {
		commands = append(commands, cmd)
	}
	sort.Strings(commands)
	return commands
}

var _ Router = (*routerImpl)(nil)
