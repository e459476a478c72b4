package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// poster is the part of a discord session used for posting errors.
type poster interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

const (
	discordLimit = 1900
	postQueue    = 32
)

var (
	mu           sync.RWMutex
	console      io.Writer = os.Stdout
	mirror       io.Writer
	session      poster
	logChannelID string
	posts        chan string
)

func init() {
	log.SetOutput(&writer{})
	log.SetFlags(log.LstdFlags)
}

// Connect creates a discord session for the bot token and starts posting
// errors to channelID. Only the REST API is used so no gateway connection
// is opened.
func Connect(token, channelID string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	Init(s, channelID)
	return s, nil
}

// Init routes [ERROR] lines to a discord channel. Calling it again replaces
// the previous destination.
func Init(s poster, channelID string) {
	mu.Lock()
	defer mu.Unlock()
	session = s
	logChannelID = channelID
	if posts == nil {
		posts = make(chan string, postQueue)
		go postLoop(posts)
	}
}

// SetMirror copies every log line to w as well as the console. nil stops
// mirroring.
func SetMirror(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	mirror = w
}

// SetConsole replaces the console destination. nil restores stdout.
func SetConsole(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	console = w
}

// Post sends a message to the log channel without blocking. Messages are
// dropped when the queue is full.
func Post(msg string) {
	mu.RLock()
	ch := posts
	ready := session != nil && logChannelID != ""
	mu.RUnlock()
	if !ready || ch == nil {
		return
	}
	if len(msg) > discordLimit {
		msg = msg[:discordLimit] + "..."
	}
	select {
	case ch <- "```\n" + msg + "\n```":
	default:
	}
}

func postLoop(ch <-chan string) {
	for msg := range ch {
		mu.RLock()
		s, channelID := session, logChannelID
		mu.RUnlock()
		if s == nil || channelID == "" {
			continue
		}
		if _, err := s.ChannelMessageSend(channelID, msg); err != nil {
			// Not through log: that would queue another post.
			_, _ = fmt.Fprintf(os.Stderr, "[ERROR] Failed to post log to discord: %v\n", err)
		}
	}
}

// Error logs an error with caller info. It also reaches the discord channel.
func Error(context string, err error) {
	_, file, line, ok := runtime.Caller(1)
	var callerInfo string
	if ok {
		parts := strings.Split(file, "/")
		if len(parts) > 2 {
			file = strings.Join(parts[len(parts)-2:], "/")
		}
		callerInfo = fmt.Sprintf("%s:%d", file, line)
	}
	log.Printf("[ERROR] in %s: %s: %v", callerInfo, context, err)
}

// Fatal logs an error, gives the discord queue a moment to drain and exits.
func Fatal(context string, err error) {
	Error(context, err)
	flush(2 * time.Second)
	os.Exit(1)
}

func flush(timeout time.Duration) {
	mu.RLock()
	ch := posts
	mu.RUnlock()
	if ch == nil {
		return
	}
	deadline := time.Now().Add(timeout)
	for len(ch) > 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
}

// writer fans a log line out to the console, the mirror and discord.
type writer struct{}

func (w *writer) Write(p []byte) (n int, err error) {
	mu.RLock()
	c, m := console, mirror
	mu.RUnlock()

	_, _ = c.Write(p)
	if m != nil {
		_, _ = m.Write(p)
	}
	if msg := string(p); strings.Contains(msg, "[ERROR]") {
		Post(strings.TrimRight(msg, "\n"))
	}
	return len(p), nil
}
