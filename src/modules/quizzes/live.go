package quizzes

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"

	"StudyVillage/src/core/config"
)

// boardConn is the write side of a leaderboard watcher. Websocket
// connections forbid concurrent writers, so every WriteMessage on a
// registered conn must happen under mu.
type boardConn interface {
	WriteMessage(messageType int, data []byte) error
}

var quizConnections = make(map[string][]boardConn)
var mu sync.Mutex

// registerWatcher adds the connection to its quiz's watcher list and sends
// the initial snapshot in the same critical section, so a broadcast landing
// mid-registration cannot write to the conn concurrently.
func registerWatcher(quizID string, conn boardConn, initial []byte) {
	mu.Lock()
	defer mu.Unlock()

	quizConnections[quizID] = append(quizConnections[quizID], conn)
	if initial == nil {
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, initial); err != nil {
		log.Println("Error sending initial leaderboard:", err)
	}
}

func unregisterWatcher(quizID string, conn boardConn) {
	mu.Lock()
	defer mu.Unlock()

	for i, ws := range quizConnections[quizID] {
		if ws == conn {
			quizConnections[quizID] = append(quizConnections[quizID][:i], quizConnections[quizID][i+1:]...)
			break
		}
	}
}

func pushBoard(quizID string, payload []byte) {
	mu.Lock()
	defer mu.Unlock()

	for _, conn := range quizConnections[quizID] {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Println("Error sending leaderboard:", err)
		}
	}
}

func watcherCount(quizID string) int {
	mu.Lock()
	defer mu.Unlock()
	return len(quizConnections[quizID])
}

// LiveLeaderboardUpgrade authenticates the handshake and lets the websocket
// middleware take over. The jwt middleware does not run on this route because
// browsers cannot set headers on a WebSocket, so the token travels in the
// query string.
func LiveLeaderboardUpgrade(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).SendString("Missing token")
	}

	userID, err := validateJWT(token)
	if err != nil {
		log.Println("Live leaderboard token rejected:", err)
		return c.Status(fiber.StatusUnauthorized).SendString("Invalid token")
	}
	c.Locals("user_id", userID)

	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// LiveLeaderboardConnHandler registers the socket for its quiz, pushes the
// current board immediately, then blocks reading until the client goes away.
func LiveLeaderboardConnHandler(conn *websocket.Conn) {
	quizID := conn.Params("id")
	if quizID == "" {
		log.Println("quiz id missing on live leaderboard connection")
		return
	}

	initial, err := boardPayload(quizID)
	if err != nil {
		log.Println("Error building initial leaderboard:", err)
	}
	registerWatcher(quizID, conn, initial)

	defer conn.Close()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	unregisterWatcher(quizID, conn)

	log.Println("Live leaderboard connection closed for quiz:", quizID)
}

// BroadcastLeaderboard recomputes the board for a quiz and pushes it to every
// connected watcher. Called after a submission completes or a quiz is
// republished.
func BroadcastLeaderboard(quizID string) {
	if watcherCount(quizID) == 0 {
		return
	}

	payload, err := boardPayload(quizID)
	if err != nil {
		log.Println("Error building leaderboard broadcast:", err)
		return
	}

	pushBoard(quizID, payload)
}

func boardPayload(quizID string) ([]byte, error) {
	board, err := buildBoard(quizID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(fiber.Map{"quiz_id": quizID, "leaderboard": board})
}

func validateJWT(tokenString string) (string, error) {
	jwtSecret := config.Config("JWT_SECRET")
	if jwtSecret == "" {
		return "", fmt.Errorf("JWT_SECRET is not set")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("error extracting claims from token")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return "", fmt.Errorf("sub not found in token claims")
	}
	return sub, nil
}
