package ws

import "github.com/coursehub-dev/coursehub/shared/domain"

// Room names. The lobby is global; each course thread gets its own room.
const LobbyRoom = "community:lobby"

func ThreadRoom(courseCode domain.CourseCode) string {
	return "thread:" + courseCode
}

// Server-pushed event names.
const (
	EventNewPost        = "newPost"
	EventNewReply       = "newReply"
	EventLikeUpdate     = "likeUpdate"
	EventActivity       = "activity"
	EventTrendingUpdate = "trendingUpdate"
)

// ServerMessage is the wire envelope for every push.
type ServerMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// ClientMessage is what clients send: currently only room membership changes.
type ClientMessage struct {
	Action string `json:"action"` // "join" or "leave"
	Room   string `json:"room"`
}
