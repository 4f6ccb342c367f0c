package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/teemow/taskmanager/internal/tasks"
)

const (
	taskIDParam = "task_id"

	maxBodyBytes = 1 << 20
)

// parseTaskID reads the {task_id} path parameter. On failure it writes a 422
// response and returns false.
func parseTaskID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, taskIDParam)
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, []ErrorDetail{{
			Loc:  []any{"path", taskIDParam},
			Msg:  "Input should be a valid integer, unable to parse string as an integer",
			Type: errTypeIntParsing,
		}})
		return 0, false
	}
	return id, true
}

// bodyDecoder collects per-field type errors while reading a JSON object.
type bodyDecoder struct {
	obj     map[string]json.RawMessage
	details []ErrorDetail
	failed  map[string]bool
}

func newBodyDecoder(r *http.Request) *bodyDecoder {
	d := &bodyDecoder{failed: make(map[string]bool)}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		d.fail(nil, "", "Error reading request body", errTypeJSONInvalid)
		return d
	}

	if len(bytes.TrimSpace(body)) == 0 {
		d.fail([]any{"body"}, "", "Field required", errTypeMissing)
		return d
	}

	if err := json.Unmarshal(body, &d.obj); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			d.fail([]any{"body", syntaxErr.Offset}, "", "JSON decode error", errTypeJSONInvalid)
		} else {
			d.fail([]any{"body"}, "", "Input should be a valid dictionary or object to extract fields from", errTypeModelAttrsType)
		}
		return d
	}
	if d.obj == nil {
		d.fail([]any{"body"}, "", "Input should be a valid dictionary or object to extract fields from", errTypeModelAttrsType)
	}
	return d
}

func (d *bodyDecoder) fail(loc []any, field, msg, typ string) {
	if loc == nil {
		loc = []any{"body"}
	}
	if field != "" {
		d.failed[field] = true
	}
	d.details = append(d.details, ErrorDetail{Loc: loc, Msg: msg, Type: typ})
}

// raw returns the field value, treating JSON null as absent.
func (d *bodyDecoder) raw(field string) (json.RawMessage, bool) {
	v, ok := d.obj[field]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil, false
	}
	return v, true
}

func (d *bodyDecoder) string(field string) *string {
	v, ok := d.raw(field)
	if !ok {
		return nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		d.fail(bodyLoc(field), field, "Input should be a valid string", errTypeStringType)
		return nil
	}
	return &s
}

// bool accepts JSON booleans, the numbers 0 and 1, and the usual yes/no
// strings, matching a lax boolean field.
func (d *bodyDecoder) bool(field string) *bool {
	v, ok := d.raw(field)
	if !ok {
		return nil
	}

	var decoded any
	dec := json.NewDecoder(bytes.NewReader(v))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		d.fail(bodyLoc(field), field, "Input should be a valid boolean", errTypeBoolType)
		return nil
	}

	var b, parsed bool
	switch x := decoded.(type) {
	case bool:
		b, parsed = x, true
	case json.Number:
		b, parsed = laxBoolNumber(x)
	case string:
		b, parsed = laxBoolStrings[strings.ToLower(strings.TrimSpace(x))]
	default:
		d.fail(bodyLoc(field), field, "Input should be a valid boolean", errTypeBoolType)
		return nil
	}
	if !parsed {
		d.fail(bodyLoc(field), field, "Input should be a valid boolean, unable to interpret input", errTypeBoolParsing)
		return nil
	}
	return &b
}

var laxBoolStrings = map[string]bool{
	"0": false, "off": false, "f": false, "false": false, "n": false, "no": false,
	"1": true, "on": true, "t": true, "true": true, "y": true, "yes": true,
}

func laxBoolNumber(n json.Number) (bool, bool) {
	f, err := n.Float64()
	if err != nil {
		return false, false
	}
	switch f {
	case 0:
		return false, true
	case 1:
		return true, true
	}
	return false, false
}

// merge appends validation failures for fields that decoded cleanly.
func (d *bodyDecoder) merge(err error) {
	var ve *tasks.ValidationError
	if !errors.As(err, &ve) {
		return
	}
	for _, f := range ve.Fields {
		if d.failed[f.Field] {
			continue
		}
		d.fail(bodyLoc(f.Field), f.Field, f.Message, f.Type)
	}
}

func decodeNewTask(r *http.Request) (tasks.NewTask, []ErrorDetail) {
	d := newBodyDecoder(r)
	if len(d.details) > 0 {
		return tasks.NewTask{}, d.details
	}

	in := tasks.NewTask{
		Title:       d.string("title"),
		Description: d.string("description"),
		Completed:   d.bool("completed"),
	}
	d.merge(in.Validate())
	return in, d.details
}

func decodeTaskUpdate(r *http.Request) (tasks.TaskUpdate, []ErrorDetail) {
	d := newBodyDecoder(r)
	if len(d.details) > 0 {
		return tasks.TaskUpdate{}, d.details
	}

	u := tasks.TaskUpdate{
		Title:       d.string("title"),
		Description: d.string("description"),
		Completed:   d.bool("completed"),
	}
	d.merge(u.Validate())
	return u, d.details
}
