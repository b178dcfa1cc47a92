package domain

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// CatalogColumns is the positional layout of an uploaded catalog row, header excluded.
var CatalogColumns = []string{
	"jeu_id", "nom_du_jeu", "auteur", "editeur", "nb_joueurs", "age_min", "duree", "type_jeu",
	"notice", "zone_plan", "zone_benevole", "zone_benevole_id", "a_animer", "recu", "mecanismes",
	"themes", "tags", "description", "image_jeu", "logo", "video",
}

var ErrCatalogRowLength = errors.New("catalog row has the wrong number of columns")

// Game is one catalog entry. Only the zone columns and AAnimer matter to scheduling.
type Game struct {
	FestivalID     uint   `json:"festival_id"`
	JeuID          int    `json:"jeu_id"`
	NomDuJeu       string `json:"nom_du_jeu"`
	Auteur         string `json:"auteur"`
	Editeur        string `json:"editeur"`
	NbJoueurs      string `json:"nb_joueurs"`
	AgeMin         string `json:"age_min"`
	Duree          string `json:"duree"`
	TypeJeu        string `json:"type_jeu"`
	Notice         string `json:"notice"`
	ZonePlan       string `json:"zone_plan"`
	ZoneBenevole   string `json:"zone_benevole"`
	ZoneBenevoleID string `json:"zone_benevole_id"`
	AAnimer        string `json:"a_animer"`
	Recu           string `json:"recu"`
	Mecanismes     string `json:"mecanismes"`
	Themes         string `json:"themes"`
	Tags           string `json:"tags"`
	Description    string `json:"description"`
	ImageJeu       string `json:"image_jeu"`
	Logo           string `json:"logo"`
	Video          string `json:"video"`
}

// GameFromRow maps a positional catalog row onto a Game.
func GameFromRow(row []string) (Game, error) {
	if len(row) != len(CatalogColumns) {
		return Game{}, fmt.Errorf("%w: got %d, want %d", ErrCatalogRowLength, len(row), len(CatalogColumns))
	}
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}

	jeuID, err := strconv.Atoi(row[0])
	if err != nil {
		return Game{}, fmt.Errorf("invalid jeu_id %q: %w", row[0], err)
	}

	return Game{
		JeuID:          jeuID,
		NomDuJeu:       row[1],
		Auteur:         row[2],
		Editeur:        row[3],
		NbJoueurs:      row[4],
		AgeMin:         row[5],
		Duree:          row[6],
		TypeJeu:        row[7],
		Notice:         row[8],
		ZonePlan:       row[9],
		ZoneBenevole:   row[10],
		ZoneBenevoleID: row[11],
		AAnimer:        row[12],
		Recu:           row[13],
		Mecanismes:     row[14],
		Themes:         row[15],
		Tags:           row[16],
		Description:    row[17],
		ImageJeu:       row[18],
		Logo:           row[19],
		Video:          row[20],
	}, nil
}

func (g Game) ZoneKey() ZoneKey {
	return ZoneKey{Plan: g.ZonePlan, ID: g.ZoneBenevoleID}
}

func (g Game) Zone() Zone {
	return Zone{Plan: g.ZonePlan, ID: g.ZoneBenevoleID, Name: g.ZoneBenevole}
}

func (g Game) ToAnimate() bool {
	return IsTruthy(g.AAnimer)
}

// TruthyValues are the lower-cased a_animer values that flag a game for animation.
var TruthyValues = []string{"oui", "o", "yes", "y", "true", "1", "x"}

// IsTruthy interprets the free-text a_animer column.
func IsTruthy(s string) bool {
	return slices.Contains(TruthyValues, strings.ToLower(strings.TrimSpace(s)))
}

// ZoneKey identifies a zone bénévole. The id is only unique within its zone plan,
// and the name is deliberately not part of the identity.
type ZoneKey struct {
	Plan string `json:"zone_plan"`
	ID   string `json:"zone_benevole_id"`
}

type Zone struct {
	Plan string `json:"zone_plan"`
	ID   string `json:"zone_benevole_id"`
	Name string `json:"zone_benevole_name"`
}

func (z Zone) Key() ZoneKey {
	return ZoneKey{Plan: z.Plan, ID: z.ID}
}

// CatalogZoneNames maps every zone key present in games to its name.
// The first row in upload order names the zone.
func CatalogZoneNames(games []Game) map[ZoneKey]string {
	names := make(map[ZoneKey]string, len(games))
	for _, g := range games {
		key := g.ZoneKey()
		if _, ok := names[key]; !ok {
			names[key] = g.ZoneBenevole
		}
	}

	return names
}
