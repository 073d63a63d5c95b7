package pkg

import (
	"fmt"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
)

// Player is one SSH visitor playing in their own spawned client.
type Player struct {
	Id     string
	Name   string
	User   string
	Remote string
	Joined time.Time
}

func NewPlayer(user, remote string) *Player {
	return &Player{
		Id:     uuid.NewString(),
		Name:   petname.Generate(2, "-"),
		User:   user,
		Remote: remote,
		Joined: time.Now(),
	}
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (%s@%s)", p.Name, p.User, p.Remote)
}

// Env is what the spawned client sees of the player.
func (p *Player) Env() []string {
	return []string{
		SessionNameEnv + "=" + p.Name,
		SessionIdEnv + "=" + p.Id,
	}
}
