// Package telegramtest поднимает поддельный Bot API для тестов обработчиков.
package telegramtest

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"
	"sync"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/stretchr/testify/require"
)

const Token = "123456:test-token"

// Call один запрос бота к API
type Call struct {
	Method string
	Fields map[string]string
	Files  map[string]string // поле -> имя файла
}

// Server записывает вызовы Bot API и отвечает успехом
type Server struct {
	srv *httptest.Server

	mu    sync.Mutex
	calls []Call
}

// New запускает сервер и бота, который ходит в него
func New(t *testing.T) (*Server, *bot.Bot) {
	t.Helper()

	s := &Server{}
	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.srv.Close)

	b, err := bot.New(Token, bot.WithServerURL(s.srv.URL), bot.WithSkipGetMe())
	require.NoError(t, err)

	return s, b
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	call := Call{
		Method: path.Base(r.URL.Path),
		Fields: map[string]string{},
		Files:  map[string]string{},
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(32 << 20); err == nil {
			for k, v := range r.MultipartForm.Value {
				call.Fields[k] = strings.Join(v, ",")
			}
			for k, files := range r.MultipartForm.File {
				if len(files) > 0 {
					call.Files[k] = files[0].Filename
				}
			}
		}
	case "application/json":
		var body map[string]any
		if raw, err := io.ReadAll(r.Body); err == nil && json.Unmarshal(raw, &body) == nil {
			for k, v := range body {
				call.Fields[k] = stringify(v)
			}
		}
	}

	s.mu.Lock()
	s.calls = append(s.calls, call)
	id := len(s.calls)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch call.Method {
	case "answerCallbackQuery", "deleteMessage", "setMyCommands":
		_, _ = io.WriteString(w, `{"ok":true,"result":true}`)
	default:
		_, _ = fmt.Fprintf(w, `{"ok":true,"result":{"message_id":%d,"date":0,"chat":{"id":1,"type":"private"}}}`, id)
	}
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	raw, _ := json.Marshal(v)
	return string(raw)
}

// Calls копия всех записанных вызовов
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsOf вызовы одного метода, например "sendMessage"
func (s *Server) CallsOf(method string) []Call {
	var result []Call
	for _, c := range s.Calls() {
		if c.Method == method {
			result = append(result, c)
		}
	}
	return result
}

// LastText текст последнего sendMessage или пустая строка
func (s *Server) LastText() string {
	msgs := s.CallsOf("sendMessage")
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1].Fields["text"]
}

func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}
