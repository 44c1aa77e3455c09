package web

import (
	"bytes"
	"html/template"
	"log"

	"github.com/jaminalder/codex-othello/internal/app"
	"github.com/jaminalder/codex-othello/internal/domain"
)

type templates struct {
	base  *template.Template
	game  *template.Template
	board *template.Template
	index *template.Template
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"disc": func(c domain.Cell) string {
			switch c {
			case domain.BlackDisc:
				return "●"
			case domain.WhiteDisc:
				return "○"
			default:
				return ""
			}
		},
	}
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Othello</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
<style>
.grid{display:grid;grid-template-columns:repeat(8,2.5em);gap:2px;background:#222;width:max-content;padding:2px}
.cell{width:2.5em;height:2.5em;background:#2e7d32;border:0;font-size:1.6em;line-height:1;padding:0;color:#000}
.cell.legal{background:#43a047;cursor:pointer}
.cell.flipped{outline:2px solid #ffeb3b}
.alert{color:#b71c1c}
</style>
</head><body>{{template "content" .}}</body></html>`))
	// Define the board template within the same set so game can include it
	template.Must(base.New("board").Funcs(funcs()).Parse(boardTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Othello</h1><form action="/game" method="post"><button>New game</button></form>`))
	game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<h1>Othello <small>{{.Label}}</small></h1>
<div hx-ext="sse" sse-connect="/game/{{.ID}}/events">
  <div sse-swap="board" hx-target="#board" hx-swap="outerHTML">{{template "board" .}}</div>
</div>`))
	// Standalone board template used for fragment rendering
	board := template.Must(template.New("board_only").Funcs(funcs()).Parse(boardTemplate))
	return &templates{base: base, game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
	var buf bytes.Buffer
	var err error
	if name == "" {
		err = t.Execute(&buf, data)
	} else {
		err = t.ExecuteTemplate(&buf, name, data)
	}
	if err != nil {
		log.Printf("web: render %s: %v", t.Name(), err)
	}
	return buf.Bytes()
}

const boardTemplate = `
<div id="board">
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  <div class="scores">
    <span id="black-score">Black: {{.Black}}</span>
    <span id="white-score">White: {{.White}}</span>
  </div>
  {{if .Over}}
  <div class="status game-over">Game Over! {{.Result}} ({{.WinnerScore}})</div>
  {{else}}
  <div class="status">{{.Turn}} Player's turn{{if not .CanMove}} (no legal move){{end}}</div>
  {{end}}
  <div class="grid">
  {{range $row := .Rows}}{{range $row}}
    <form hx-post="/game/{{$.ID}}/play" hx-target="#board" hx-swap="outerHTML" method="post" action="/game/{{$.ID}}/play">
      <input type="hidden" name="r" value="{{.Row}}">
      <input type="hidden" name="c" value="{{.Col}}">
      <button type="submit" class="cell{{if .Legal}} legal{{end}}{{if .Flipped}} flipped{{end}}" data-r="{{.Row}}" data-c="{{.Col}}">{{disc .Cell}}</button>
    </form>
  {{end}}{{end}}
  </div>
  <div class="controls">
    {{if and (not .Over) (not .CanMove)}}
    <form hx-post="/game/{{.ID}}/pass" hx-target="#board" hx-swap="outerHTML" method="post"><button>Pass</button></form>
    {{end}}
    <form hx-post="/game/{{.ID}}/new" hx-target="#board" hx-swap="outerHTML" method="post"><button>New game</button></form>
  </div>
</div>
`

type cellView struct {
	Row     int
	Col     int
	Cell    domain.Cell
	Legal   bool
	Flipped bool
}

// boardView is the data behind one board fragment.
type boardView struct {
	ID          string
	Label       string
	Rows        [domain.Size][domain.Size]cellView
	Black       int
	White       int
	Turn        string
	CanMove     bool
	Over        bool
	Result      string
	WinnerScore int
	Error       string
}

func newBoardView(gs app.GameState, errMsg string) boardView {
	v := boardView{
		ID:      gs.ID,
		Label:   gs.Label,
		Black:   gs.Game.Black,
		White:   gs.Game.White,
		Turn:    gs.Game.Turn.String(),
		CanMove: gs.Game.CanMove,
		Over:    gs.Game.State == domain.GameOver,
		Result:  gs.Game.Result.String(),
		Error:   errMsg,
	}
	switch gs.Game.Result {
	case domain.WhiteWins:
		v.WinnerScore = gs.Game.White
	default:
		v.WinnerScore = gs.Game.Black
	}
	for r := 0; r < domain.Size; r++ {
		for c := 0; c < domain.Size; c++ {
			v.Rows[r][c] = cellView{Row: r, Col: c, Cell: gs.Game.Board[r][c]}
		}
	}
	for _, m := range gs.Legal {
		v.Rows[m.Row][m.Col].Legal = true
	}
	if gs.Last != nil {
		for _, f := range gs.Last.Flipped {
			v.Rows[f.Row][f.Col].Flipped = true
		}
	}
	return v
}
