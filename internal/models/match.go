package models

import "fmt"

// Match represents fixture metadata from the data provider.
type Match struct {
	ID          int
	Date        string
	Competition string
	Season      string
	HomeTeam    string
	AwayTeam    string
	HomeScore   int
	AwayScore   int
}

// Title renders the fixture as "Home h-a Away".
func (m Match) Title() string {
	return fmt.Sprintf("%s %d-%d %s", m.HomeTeam, m.HomeScore, m.AwayScore, m.AwayTeam)
}
