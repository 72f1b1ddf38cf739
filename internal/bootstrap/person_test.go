package bootstrap

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCreator struct {
	calls []PersonInput
	id    string
	err   error
}

func (f *fakeCreator) CreatePerson(_ context.Context, id, name, password string) (string, error) {
	f.calls = append(f.calls, PersonInput{Email: id, Name: name, Password: password})
	return f.id, f.err
}

func prompter(input string, passwords ...string) (*Prompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	i := 0
	return &Prompter{
		In:  bufio.NewReader(strings.NewReader(input)),
		Out: out,
		ReadPassword: func() (string, error) {
			if i >= len(passwords) {
				return "", errors.New("no more passwords")
			}
			pw := passwords[i]
			i++
			return pw, nil
		},
	}, out
}

func TestCreatePerson_Prompts(t *testing.T) {
	c := &fakeCreator{id: "ana@example.org"}
	p, out := prompter("ana@example.org\nAna\n", "s3cretpass", "s3cretpass")

	id, err := CreatePerson(context.Background(), c, p, PersonInput{})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.org", id)
	require.Len(t, c.calls, 1)
	assert.Equal(t, PersonInput{Email: "ana@example.org", Name: "Ana", Password: "s3cretpass"}, c.calls[0])
	assert.Contains(t, out.String(), "Email: ")
	assert.Contains(t, out.String(), "Confirm Password: ")
}

func TestCreatePerson_FlagsSkipPrompt(t *testing.T) {
	c := &fakeCreator{id: "p-1"}
	p, out := prompter("")

	id, err := CreatePerson(context.Background(), c, p, PersonInput{Email: "a@b.c", Name: "A", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, "p-1", id)
	assert.Empty(t, out.String())
}

func TestCreatePerson_Validation(t *testing.T) {
	cases := map[string]struct {
		in   PersonInput
		want string
	}{
		"bad email":      {PersonInput{Email: "nope", Name: "A", Password: "longenough"}, "invalid email"},
		"short password": {PersonInput{Email: "a@b.c", Name: "A", Password: "short"}, "at least 8"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := &fakeCreator{}
			p, _ := prompter("")
			_, err := CreatePerson(context.Background(), c, p, tc.in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
			assert.Empty(t, c.calls)
		})
	}
}

func TestCreatePerson_PasswordMismatch(t *testing.T) {
	c := &fakeCreator{}
	p, _ := prompter("", "first-password", "second-password")

	_, err := CreatePerson(context.Background(), c, p, PersonInput{Email: "a@b.c", Name: "A"})
	require.EqualError(t, err, "passwords do not match")
	assert.Empty(t, c.calls)
}

func TestCreatePerson_UpstreamError(t *testing.T) {
	c := &fakeCreator{err: errors.New("persons POST /persons: rejected (status 409): exists")}
	p, _ := prompter("")

	_, err := CreatePerson(context.Background(), c, p, PersonInput{Email: "a@b.c", Name: "A", Password: "longenough"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create person")
}

func TestReadPasswordStdin(t *testing.T) {
	pw, err := ReadPasswordStdin(strings.NewReader("hunter22\nrest"))
	require.NoError(t, err)
	assert.Equal(t, "hunter22", pw)

	pw, err = ReadPasswordStdin(strings.NewReader("noeol"))
	require.NoError(t, err)
	assert.Equal(t, "noeol", pw)
}
