// Package parser turns a raw command line into a command.Command.
package parser

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Veraticus/hireflow/internal/command"
	"github.com/Veraticus/hireflow/internal/common"
	"github.com/Veraticus/hireflow/internal/model"
	"github.com/Veraticus/hireflow/internal/ordering"
	"github.com/Veraticus/hireflow/internal/predicate"
)

// Parser errors.
var (
	ErrInvalidFormat  = errors.New("invalid command format")
	ErrUnknownCommand = errors.New("unknown command")
)

// Argument prefixes.
const (
	PrefixName     = "n/"
	PrefixPhone    = "p/"
	PrefixEmail    = "e/"
	PrefixJob      = "j/"
	PrefixStatus   = "s/"
	PrefixAddress  = "a/"
	PrefixRating   = "r/"
	PrefixTag      = "t/"
	PrefixToStatus = "to/"

	// FlagForce skips confirmation on delete and status.
	FlagForce = "-f"
)

var fieldPrefixes = []string{PrefixName, PrefixPhone, PrefixEmail, PrefixJob, PrefixStatus, PrefixAddress}

// Parse parses a full command line.
func Parse(line string) (command.Command, error) {
	word, args, _ := strings.Cut(strings.TrimSpace(line), " ")
	args = strings.TrimSpace(args)

	switch command.Kind(strings.ToLower(word)) {
	case command.KindAdd:
		return parseAdd(args)
	case command.KindDelete:
		return parseDelete(args)
	case command.KindEdit:
		return parseEdit(args)
	case command.KindRate:
		return parseRate(args)
	case command.KindStatus:
		return parseStatus(args)
	case command.KindSearch:
		return parseSearch(args)
	case command.KindSort:
		return parseSort(args)
	case command.KindSummary:
		return parseSummary(args)
	case command.KindExport:
		return parseExport(args)
	case command.KindAvatar:
		return parseAvatar(args)
	case command.KindList:
		return command.ListCommand{}, nil
	case command.KindClear:
		return command.ClearCommand{}, nil
	case command.KindHelp:
		return command.HelpCommand{}, nil
	case command.KindExit:
		return command.ExitCommand{}, nil
	case "":
		return nil, common.NewUserError("Please enter a command. Type 'help' to see what is available.", ErrUnknownCommand)
	default:
		return nil, common.NewUserError("Unknown command", fmt.Errorf("%w: %s", ErrUnknownCommand, word))
	}
}

// invalid wraps cause as a format error for kind, showing its usage.
func invalid(kind command.Kind, cause error) error {
	if !errors.Is(cause, ErrInvalidFormat) {
		cause = fmt.Errorf("%w: %w", ErrInvalidFormat, cause)
	}
	return common.NewUserError("Invalid command format!\n"+Usage(kind), cause)
}

// invalidValue reports a well-formed command carrying a bad value; the
// underlying message is shown as is.
func invalidValue(err error) error {
	return common.NewUserError(common.UserMessage(err), err)
}

func parseAdd(args string) (command.Command, error) {
	a := Tokenize(args, slices.Concat(fieldPrefixes, []string{PrefixRating, PrefixTag})...)
	if a.Preamble != "" {
		return nil, invalid(command.KindAdd, fmt.Errorf("unexpected text %q", a.Preamble))
	}
	for _, p := range fieldPrefixes {
		if !a.Has(p) {
			return nil, invalid(command.KindAdd, fmt.Errorf("missing %s", p))
		}
	}
	if err := a.RequireSingle(slices.Concat(fieldPrefixes, []string{PrefixRating})...); err != nil {
		return nil, invalid(command.KindAdd, err)
	}

	rating := model.Unrated
	if v, ok := a.Value(PrefixRating); ok {
		r, err := model.ParseRating(v)
		if err != nil {
			return nil, invalidValue(err)
		}
		rating = r
	}

	name, _ := a.Value(PrefixName)
	phone, _ := a.Value(PrefixPhone)
	email, _ := a.Value(PrefixEmail)
	job, _ := a.Value(PrefixJob)
	status, _ := a.Value(PrefixStatus)
	address, _ := a.Value(PrefixAddress)

	return command.AddCommand{
		Fields: model.ApplicantFields{
			Name:        name,
			Phone:       phone,
			Email:       email,
			JobPosition: job,
			Status:      status,
			Address:     address,
			Tags:        nonEmpty(a.All(PrefixTag)),
		},
		Rating: rating,
	}, nil
}

func parseEdit(args string) (command.Command, error) {
	a := Tokenize(args, slices.Concat(fieldPrefixes, []string{PrefixTag})...)
	index, err := parseIndex(a.Preamble)
	if err != nil {
		return nil, invalid(command.KindEdit, err)
	}
	if err := a.RequireSingle(fieldPrefixes...); err != nil {
		return nil, invalid(command.KindEdit, err)
	}

	var o model.Overrides
	set := func(prefix string) *string {
		if v, ok := a.Value(prefix); ok {
			return &v
		}
		return nil
	}
	o.Name = set(PrefixName)
	o.Phone = set(PrefixPhone)
	o.Email = set(PrefixEmail)
	o.JobPosition = set(PrefixJob)
	o.Status = set(PrefixStatus)
	o.Address = set(PrefixAddress)
	if a.Has(PrefixTag) {
		// a lone empty t/ clears every tag
		tags := nonEmpty(a.All(PrefixTag))
		if tags == nil {
			tags = []string{}
		}
		o.Tags = &tags
	}

	if o.IsEmpty() {
		return nil, common.NewUserError(command.MessageNothingToEdit, fmt.Errorf("%w: no fields", ErrInvalidFormat))
	}
	return command.EditCommand{Index: index, Overrides: o}, nil
}

func parseDelete(args string) (command.Command, error) {
	args, force := cutForce(args)
	target, _, err := parseTarget(command.KindDelete, args)
	if err != nil {
		return nil, err
	}
	return command.DeleteCommand{Target: target, Force: force}, nil
}

func parseRate(args string) (command.Command, error) {
	target, a, err := parseTarget(command.KindRate, args, PrefixRating)
	if err != nil {
		return nil, err
	}
	v, ok := a.Value(PrefixRating)
	if !ok {
		return nil, invalid(command.KindRate, errors.New("missing r/"))
	}
	if err := a.RequireSingle(PrefixRating); err != nil {
		return nil, invalid(command.KindRate, err)
	}
	rating, err := model.ParseRating(v)
	if err != nil {
		return nil, invalidValue(err)
	}
	return command.RateCommand{Target: target, Rating: rating}, nil
}

func parseStatus(args string) (command.Command, error) {
	args, force := cutForce(args)
	target, a, err := parseTarget(command.KindStatus, args, PrefixToStatus)
	if err != nil {
		return nil, err
	}
	v, ok := a.Value(PrefixToStatus)
	if !ok {
		return nil, invalid(command.KindStatus, errors.New("missing to/"))
	}
	if err := a.RequireSingle(PrefixToStatus); err != nil {
		return nil, invalid(command.KindStatus, err)
	}
	status, err := model.ParseStatus(v)
	if err != nil {
		return nil, invalidValue(err)
	}
	return command.StatusCommand{Target: target, Status: status, Force: force}, nil
}

func parseSearch(args string) (command.Command, error) {
	a := Tokenize(args, predicate.Prefixes()...)
	if a.Preamble != "" || len(a.Prefixes()) == 0 {
		return nil, invalid(command.KindSearch, errors.New("search needs criteria"))
	}
	ps, err := criteria(command.KindSearch, a)
	if err != nil {
		return nil, err
	}
	return command.SearchCommand{Predicates: ps}, nil
}

func parseSummary(args string) (command.Command, error) {
	a := Tokenize(args, predicate.Prefixes()...)
	if a.Preamble != "" {
		return nil, invalid(command.KindSummary, fmt.Errorf("unexpected text %q", a.Preamble))
	}
	ps, err := criteria(command.KindSummary, a)
	if err != nil {
		return nil, err
	}
	return command.SummaryCommand{Predicates: ps}, nil
}

func parseSort(args string) (command.Command, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 || len(fields) > 2 {
		return nil, invalid(command.KindSort, errors.New("expected a key and optional direction"))
	}
	ascending := true
	if len(fields) == 2 {
		switch strings.ToLower(fields[1]) {
		case "asc":
		case "desc":
			ascending = false
		default:
			return nil, invalid(command.KindSort, fmt.Errorf("unknown direction %q", fields[1]))
		}
	}
	return command.SortCommand{Key: ordering.ParseKey(fields[0]), Ascending: ascending}, nil
}

func parseExport(args string) (command.Command, error) {
	if args == "" {
		return nil, invalid(command.KindExport, errors.New("missing file"))
	}
	return command.ExportCommand{Path: args}, nil
}

func parseAvatar(args string) (command.Command, error) {
	indexText, path, _ := strings.Cut(args, " ")
	index, err := parseIndex(indexText)
	if err != nil {
		return nil, invalid(command.KindAvatar, err)
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, invalid(command.KindAvatar, errors.New("missing path"))
	}
	return command.AvatarCommand{Index: index, Path: path}, nil
}

// parseTarget reads either an index preamble or criteria from args. extra
// names the command's own prefixes, which are returned for the caller.
func parseTarget(kind command.Kind, args string, extra ...string) (command.Target, Arguments, error) {
	a := Tokenize(args, slices.Concat(predicate.Prefixes(), extra)...)

	hasCriteria := false
	for _, p := range predicate.Prefixes() {
		if a.Has(p) {
			hasCriteria = true
			break
		}
	}

	switch {
	case a.Preamble != "" && hasCriteria:
		return command.Target{}, a, invalid(kind, errors.New("give either an index or criteria, not both"))
	case a.Preamble != "":
		index, err := parseIndex(a.Preamble)
		if err != nil {
			return command.Target{}, a, invalid(kind, err)
		}
		return command.IndexTarget(index), a, nil
	case hasCriteria:
		ps, err := criteria(kind, a)
		if err != nil {
			return command.Target{}, a, err
		}
		return command.PredicateTarget(ps...), a, nil
	default:
		return command.Target{}, a, invalid(kind, errors.New("missing index or criteria"))
	}
}

// Criteria parses prefixed search fields given outside the command line,
// such as CLI arguments. No fields selects every applicant.
func Criteria(args []string) (predicate.Predicate, error) {
	a := Tokenize(strings.Join(args, " "), predicate.Prefixes()...)
	if a.Preamble != "" {
		return nil, invalid(command.KindSearch, fmt.Errorf("unexpected text %q", a.Preamble))
	}
	ps, err := criteria(command.KindSearch, a)
	if err != nil {
		return nil, err
	}
	return predicate.All(ps...), nil
}

// criteria builds predicates in registry order. Repeating a prefix is a
// format error; a bad value is a targeting error.
func criteria(kind command.Kind, a Arguments) ([]predicate.Predicate, error) {
	if err := a.RequireSingle(predicate.Prefixes()...); err != nil {
		return nil, invalid(kind, err)
	}
	ps, err := predicate.Build(a.Only(predicate.Prefixes()))
	if err != nil {
		msg := err.Error()
		var ce *predicate.CriteriaError
		if errors.As(err, &ce) {
			msg = ce.Reason
		}
		return nil, common.NewUserError(msg, fmt.Errorf("%w: %w", command.ErrInvalidTargeting, err))
	}
	return ps, nil
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: index %q is not a number", ErrInvalidFormat, s)
	}
	return n, nil
}

// cutForce strips a trailing force flag.
func cutForce(args string) (string, bool) {
	fields := strings.Fields(args)
	if len(fields) > 0 && fields[len(fields)-1] == FlagForce {
		return strings.Join(fields[:len(fields)-1], " "), true
	}
	return args, false
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
