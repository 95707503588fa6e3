package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const telegramAPIBase = "https://api.telegram.org"

// Context carries one parsed command invocation: the resolved command name,
// its argument tokens, and a reply channel back to the operator chat.
type Context struct {
	Command string
	Args    []string
	reply   func(text string) error
}

// Reply sends text back to the chat the command came from. Delivery
// failures are logged; a command handler has nothing useful to do with them.
func (c *Context) Reply(text string) {
	if err := c.reply(text); err != nil {
		log.Printf("Error replying to /%s: %v", c.Command, err)
	}
}

// Handler handles a single bot command
type Handler func(ctx *Context)

// Command is one entry in the dispatch table
type Command struct {
	Name    string
	Aliases []string
	Usage   string
	handler Handler
}

// Bot is a long-polling Telegram bot that dispatches operator commands
// through a fixed table. Only messages from the configured chat are honored.
type Bot struct {
	client   *http.Client
	apiBase  string
	token    string
	chatID   string
	byName   map[string]*Command
	commands []*Command
	offset   int64
}

// New creates a bot for the given token, restricted to the given chat
func New(token, chatID string) *Bot {
	return &Bot{
		// Long polling holds the request open server-side; the client
		// timeout must exceed the poll timeout.
		client:  &http.Client{Timeout: 40 * time.Second},
		apiBase: telegramAPIBase,
		token:   token,
		chatID:  chatID,
		byName:  make(map[string]*Command),
	}
}

// Handle registers a command and its aliases in the dispatch table
func (b *Bot) Handle(name string, aliases []string, usage string, handler Handler) {
	cmd := &Command{Name: name, Aliases: aliases, Usage: usage, handler: handler}
	b.commands = append(b.commands, cmd)
	b.byName[name] = cmd
	for _, alias := range aliases {
		b.byName[alias] = cmd
	}
}

// Commands returns the registered commands in registration order
func (b *Bot) Commands() []*Command {
	return b.commands
}

// Run polls for updates until the context is canceled
func (b *Bot) Run(ctx context.Context) {
	log.Println("Telegram bot started")
	for {
		select {
		case <-ctx.Done():
			log.Println("Telegram bot stopped")
			return
		default:
		}

		updates, err := b.getUpdates(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			log.Printf("Error polling telegram updates: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		for _, update := range updates {
			b.offset = update.UpdateID + 1
			b.dispatch(update)
		}
	}
}

type update struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

type updatesResponse struct {
	OK     bool     `json:"ok"`
	Result []update `json:"result"`
}

func (b *Bot) getUpdates(ctx context.Context) ([]update, error) {
	url := fmt.Sprintf("%s/bot%s/getUpdates?timeout=30&offset=%d&allowed_updates=[\"message\"]", b.apiBase, b.token, b.offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var parsed updatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode updates: %w", err)
	}
	if !parsed.OK {
		return nil, fmt.Errorf("telegram getUpdates returned ok=false")
	}
	return parsed.Result, nil
}

// dispatch routes an update through the command table
func (b *Bot) dispatch(u update) {
	if u.Message == nil {
		return
	}
	if strconv.FormatInt(u.Message.Chat.ID, 10) != b.chatID {
		return
	}

	name, args, ok := parseCommand(u.Message.Text)
	if !ok {
		return
	}

	cmd, found := b.byName[name]
	if !found {
		return
	}

	chatID := u.Message.Chat.ID
	cmd.handler(&Context{
		Command: cmd.Name,
		Args:    args,
		reply: func(text string) error {
			return b.sendMessage(chatID, text)
		},
	})
}

// parseCommand splits "/name@bot arg1 arg2" into the command name and its
// argument tokens.
func parseCommand(text string) (string, []string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", nil, false
	}

	name := strings.TrimPrefix(fields[0], "/")
	// Commands in group chats arrive as /name@botname
	if at := strings.Index(name, "@"); at >= 0 {
		name = name[:at]
	}
	if name == "" {
		return "", nil, false
	}
	return name, fields[1:], true
}

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

func (b *Bot) sendMessage(chatID int64, text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", b.apiBase, b.token)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram sendMessage returned status %d", resp.StatusCode)
	}
	return nil
}
