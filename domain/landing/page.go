package landing

import (
	"fmt"
	"time"

	"github.com/akeren/waitlist-api/internal/intake"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const pageTitle = "Join the waitlist"

const pageStyle = `
body{font-family:system-ui,sans-serif;max-width:28rem;margin:4rem auto;padding:0 1rem}
label{display:block;margin-bottom:.5rem;font-weight:600}
input[type=text],input[type=email],input[type=tel]{width:100%;padding:.5rem;box-sizing:border-box}
button{margin-top:1rem;padding:.5rem 1rem}
.message{margin-top:1rem;padding:.75rem;border-radius:.25rem}
.message.success{background:#e7f7ec;color:#14532d}
.message.error{background:#fdecec;color:#7f1d1d}
`

type stepView struct {
	label       string
	inputType   string
	placeholder string
	button      string
}

var stepViews = map[intake.Step]stepView{
	intake.StepName:  {label: "What's your name?", inputType: "text", placeholder: "Jane Doe", button: "Next"},
	intake.StepEmail: {label: "What's your email?", inputType: "email", placeholder: "jane@example.com", button: "Next"},
	intake.StepPhone: {label: "What's your phone number?", inputType: "tel", placeholder: "9876543210", button: "Join the waitlist"},
}

type pageData struct {
	State        intake.FormState
	RefreshAfter time.Duration
	Celebrate    bool
}

// formPage renders the wizard at its current step. A positive RefreshAfter
// sends the browser back to a fresh form once it elapses.
func formPage(data pageData) g.Node {
	state := data.State
	view, ok := stepViews[state.Step]
	if !ok {
		state = intake.NewFormState()
		view = stepViews[intake.StepName]
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				g.If(data.RefreshAfter > 0,
					Meta(g.Attr("http-equiv", "refresh"), Content(fmt.Sprintf("%d;url=/", int(data.RefreshAfter.Seconds())))),
				),
				TitleEl(g.Text(pageTitle)),
				StyleEl(g.Raw(pageStyle)),
			),
			Body(
				g.If(data.Celebrate, Class("celebrate")),
				Main(
					H1(g.Text(pageTitle)),
					P(g.Textf("Step %d of 3", int(state.Step))),
					Form(
						Method("post"),
						Action("/join"),
						Input(Type("hidden"), Name("step"), Value(fmt.Sprint(int(state.Step)))),
						hiddenFields(state),
						Label(For("value"), g.Text(view.label)),
						Input(
							ID("value"),
							Name("value"),
							Type(view.inputType),
							Value(state.Current()),
							Placeholder(view.placeholder),
							AutoFocus(),
						),
						Button(Type("submit"), g.Text(view.button)),
					),
					messageBanner(state.Message),
				),
			),
		),
	})
}

// hiddenFields carries the values of the other steps between requests.
func hiddenFields(state intake.FormState) g.Node {
	fields := []struct {
		step  intake.Step
		name  string
		value string
	}{
		{intake.StepName, "name", state.Name},
		{intake.StepEmail, "email", state.Email},
		{intake.StepPhone, "phoneNumber", state.PhoneNumber},
	}

	var nodes []g.Node
	for _, f := range fields {
		if f.step == state.Step {
			continue
		}
		nodes = append(nodes, Input(Type("hidden"), Name(f.name), Value(f.value)))
	}
	return g.Group(nodes)
}

func messageBanner(msg intake.Message) g.Node {
	if msg.Kind == intake.MessageNone || msg.Text == "" {
		return nil
	}

	role := "status"
	if msg.Kind == intake.MessageError {
		role = "alert"
	}
	return Div(Class("message "+msg.Kind.String()), Role(role), g.Text(msg.Text))
}
