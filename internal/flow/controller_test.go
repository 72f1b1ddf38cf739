package flow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/datacentricdesign/dcd-auth/internal/claims"
	"github.com/datacentricdesign/dcd-auth/internal/flow/mocks"
	"github.com/datacentricdesign/dcd-auth/internal/hydra"
	"github.com/datacentricdesign/dcd-auth/internal/jwt"
	"github.com/datacentricdesign/dcd-auth/internal/scopes"
	"github.com/datacentricdesign/dcd-auth/internal/upstream"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ControllerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	hydra   *mocks.MockAuthorizationServer
	persons *mocks.MockIdentityStore
	caps    *mocks.MockCapabilityIssuer
	rec     *mocks.MockRecorder
	c       *Controller
	ctx     context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.hydra = mocks.NewMockAuthorizationServer(s.ctrl)
	s.persons = mocks.NewMockIdentityStore(s.ctrl)
	s.caps = mocks.NewMockCapabilityIssuer(s.ctrl)
	s.rec = mocks.NewMockRecorder(s.ctrl)
	s.ctx = context.Background()

	c, err := New(Deps{
		Hydra:        s.hydra,
		Persons:      s.persons,
		Capabilities: s.caps,
		Scopes: scopes.New(
			scopes.Descriptor{ID: "openid", Name: "Identity", Description: "Who you are"},
			scopes.Descriptor{ID: "profile", Name: "Profile", Description: "Your name"},
		),
		FirstParty: ParseAllowList("dcd-hub, dcd-mobile"),
		Subjects:   claims.Subjects{Namespace: "dcd"},
		Recorder:   s.rec,
	})
	s.Require().NoError(err)
	s.c = c
}

func (s *ControllerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func completed(url string) *hydra.Completed { return &hydra.Completed{RedirectTo: url} }

func (s *ControllerSuite) requireValidation(err error, flow string) *ValidationError {
	s.Require().Error(err)
	ve, ok := AsValidation(err)
	s.Require().True(ok, "expected ValidationError, got %v", err)
	s.Equal(flow, ve.Flow)
	return ve
}

// ---- construcción ----

func (s *ControllerSuite) TestNew_MissingDependencies() {
	_, err := New(Deps{})
	s.Require().Error(err)
	s.Contains(err.Error(), "Hydra")
	s.Contains(err.Error(), "Persons")
	s.Contains(err.Error(), "Capabilities")
}

func (s *ControllerSuite) TestNew_Defaults() {
	c, err := New(Deps{Hydra: s.hydra, Persons: s.persons, Capabilities: s.caps})
	s.Require().NoError(err)
	s.Equal(DefaultRememberFor, c.rememberFor)
	s.Equal(DefaultLogoutFallbackURL, c.logoutFallback)
	s.False(c.firstParty.IsFirstParty(""))
}

// ---- login ----

func (s *ControllerSuite) TestStartLogin_SkipAcceptsOnceWithoutRender() {
	s.hydra.EXPECT().GetLoginRequest(s.ctx, "ch-1").
		Return(&hydra.LoginRequest{Challenge: "ch-1", Skip: true, Subject: "dcd:persons:alice"}, nil)
	s.hydra.EXPECT().AcceptLoginRequest(s.ctx, "ch-1", hydra.AcceptLogin{Subject: "dcd:persons:alice"}).
		Return(completed("https://hydra/after-login"), nil).Times(1)
	s.rec.EXPECT().Decision(FlowLogin, DecisionSkip)

	out, err := s.c.StartLogin(s.ctx, "ch-1")
	s.Require().NoError(err)
	s.True(out.IsRedirect())
	s.Equal("https://hydra/after-login", out.RedirectTo)
}

func (s *ControllerSuite) TestStartLogin_RendersForm() {
	s.hydra.EXPECT().GetLoginRequest(s.ctx, "ch-1").Return(&hydra.LoginRequest{Challenge: "ch-1"}, nil)
	s.rec.EXPECT().Decision(FlowLogin, DecisionRender)

	out, err := s.c.StartLogin(s.ctx, "ch-1")
	s.Require().NoError(err)
	s.Equal(&SigninPage{Challenge: "ch-1"}, out.Page)
	s.Equal("signin", out.Page.Template())
}

func (s *ControllerSuite) TestStartLogin_MissingChallengeMakesNoCall() {
	_, err := s.c.StartLogin(s.ctx, "  ")
	ve := s.requireValidation(err, FlowLogin)
	s.Require().NotNil(ve.Page)
	s.Equal("signin", ve.Page.Template())
	s.NotEmpty(ve.Page.ErrorMessage())
}

func (s *ControllerSuite) TestStartLogin_UpstreamErrorPropagates() {
	boom := &upstream.Error{Service: "hydra", Kind: upstream.Rejected, Status: 404, Message: "Not Found"}
	s.hydra.EXPECT().GetLoginRequest(s.ctx, "ch-1").Return(nil, boom)

	_, err := s.c.StartLogin(s.ctx, "ch-1")
	s.ErrorIs(err, boom)
}

func (s *ControllerSuite) TestSubmitLogin_ValidCredentialsAccept() {
	gomock.InOrder(
		s.persons.EXPECT().RefreshCredential(s.ctx).Return(nil),
		s.persons.EXPECT().CheckPassword(s.ctx, "alice@example.com", "pw").Return(true, nil),
		s.hydra.EXPECT().AcceptLoginRequest(s.ctx, "ch-1", hydra.AcceptLogin{
			Subject:     "dcd:persons:alice@example.com",
			Remember:    true,
			RememberFor: 3600,
		}).Return(completed("https://hydra/next"), nil).Times(1),
	)
	s.rec.EXPECT().Decision(FlowLogin, DecisionAccept)

	out, err := s.c.SubmitLogin(s.ctx, LoginSubmission{
		Challenge: "ch-1", Email: "alice@example.com", Password: "pw", Remember: true,
	})
	s.Require().NoError(err)
	s.Equal("https://hydra/next", out.RedirectTo)
}

func (s *ControllerSuite) TestSubmitLogin_PrefixedEmailIsNotDoublePrefixed() {
	s.persons.EXPECT().RefreshCredential(s.ctx).Return(nil)
	s.persons.EXPECT().CheckPassword(s.ctx, "dcd:persons:alice", "pw").Return(true, nil)
	s.hydra.EXPECT().AcceptLoginRequest(s.ctx, "ch-1", gomock.Cond(func(x any) bool {
		return x.(hydra.AcceptLogin).Subject == "dcd:persons:alice"
	})).Return(completed("https://hydra/next"), nil)
	s.rec.EXPECT().Decision(FlowLogin, DecisionAccept)

	_, err := s.c.SubmitLogin(s.ctx, LoginSubmission{Challenge: "ch-1", Email: "dcd:persons:alice", Password: "pw"})
	s.Require().NoError(err)
}

func (s *ControllerSuite) TestSubmitLogin_InvalidCredentialsRePrompt() {
	s.persons.EXPECT().RefreshCredential(s.ctx).Return(nil)
	s.persons.EXPECT().CheckPassword(s.ctx, "alice@example.com", "wrong").Return(false, nil)
	s.rec.EXPECT().Decision(FlowLogin, DecisionInvalidCredentials)

	out, err := s.c.SubmitLogin(s.ctx, LoginSubmission{Challenge: "ch-1", Email: "alice@example.com", Password: "wrong"})
	s.Require().NoError(err)
	s.False(out.IsRedirect())
	s.Equal(&SigninPage{Challenge: "ch-1", Email: "alice@example.com", Error: MsgInvalidCredentials}, out.Page)
}

func (s *ControllerSuite) TestSubmitLogin_RejectedCheckRePrompts() {
	s.persons.EXPECT().RefreshCredential(s.ctx).Return(nil)
	s.persons.EXPECT().CheckPassword(s.ctx, "ghost", "pw").
		Return(false, &upstream.Error{Service: "persons", Kind: upstream.Rejected, Status: 404, Message: "Person not found"})
	s.rec.EXPECT().Decision(FlowLogin, DecisionInvalidCredentials)

	out, err := s.c.SubmitLogin(s.ctx, LoginSubmission{Challenge: "ch-1", Email: "ghost", Password: "pw"})
	s.Require().NoError(err)
	s.Equal(MsgInvalidCredentials, out.Page.ErrorMessage())
}

func (s *ControllerSuite) TestSubmitLogin_UnavailableIsFatal() {
	down := upstream.NewUnavailable("persons", "POST /persons/{id}/check", context.DeadlineExceeded)
	s.persons.EXPECT().RefreshCredential(s.ctx).Return(nil)
	s.persons.EXPECT().CheckPassword(s.ctx, "alice", "pw").Return(false, down)

	_, err := s.c.SubmitLogin(s.ctx, LoginSubmission{Challenge: "ch-1", Email: "alice", Password: "pw"})
	s.True(upstream.IsUnavailable(err))
}

func (s *ControllerSuite) TestSubmitLogin_RefreshFailureIsFatal() {
	down := upstream.NewUnavailable("persons", "token", errors.New("dial tcp: refused"))
	s.persons.EXPECT().RefreshCredential(s.ctx).Return(down)

	_, err := s.c.SubmitLogin(s.ctx, LoginSubmission{Challenge: "ch-1", Email: "alice", Password: "pw"})
	s.ErrorIs(err, down)
}

func (s *ControllerSuite) TestSubmitLogin_Validation() {
	_, err := s.c.SubmitLogin(s.ctx, LoginSubmission{Email: "alice", Password: "pw"})
	ve := s.requireValidation(err, FlowLogin)
	s.Equal("alice", ve.Page.(*SigninPage).Email)

	_, err = s.c.SubmitLogin(s.ctx, LoginSubmission{Challenge: "ch-1", Email: "alice"})
	ve = s.requireValidation(err, FlowLogin)
	s.Equal("ch-1", ve.Page.(*SigninPage).Challenge)
}

// ---- signup ----

func (s *ControllerSuite) TestStartSignup_SkipAccepts() {
	s.hydra.EXPECT().GetLoginRequest(s.ctx, "ch-2").Return(&hydra.LoginRequest{Skip: true, Subject: "dcd:persons:bob"}, nil)
	s.hydra.EXPECT().AcceptLoginRequest(s.ctx, "ch-2", hydra.AcceptLogin{Subject: "dcd:persons:bob"}).Return(completed("https://hydra/x"), nil)
	s.rec.EXPECT().Decision(FlowSignup, DecisionSkip)

	out, err := s.c.StartSignup(s.ctx, "ch-2")
	s.Require().NoError(err)
	s.Equal("https://hydra/x", out.RedirectTo)
}

func (s *ControllerSuite) TestStartSignup_RendersSignupForm() {
	s.hydra.EXPECT().GetLoginRequest(s.ctx, "ch-2").Return(&hydra.LoginRequest{}, nil)
	s.rec.EXPECT().Decision(FlowSignup, DecisionRender)

	out, err := s.c.StartSignup(s.ctx, "ch-2")
	s.Require().NoError(err)
	s.Equal(&SignupPage{Challenge: "ch-2"}, out.Page)
}

func (s *ControllerSuite) TestSubmitSignup_CreatesAndAccepts() {
	gomock.InOrder(
		s.persons.EXPECT().RefreshCredential(s.ctx).Return(nil),
		s.persons.EXPECT().CreatePerson(s.ctx, "bob@example.com", "Bob", "pw").Return("bob@example.com", nil),
		s.hydra.EXPECT().AcceptLoginRequest(s.ctx, "ch-2", hydra.AcceptLogin{
			Subject: "dcd:persons:bob@example.com", RememberFor: 3600,
		}).Return(completed("https://hydra/next"), nil),
	)
	s.rec.EXPECT().Decision(FlowSignup, DecisionAccept)

	out, err := s.c.SubmitSignup(s.ctx, SignupSubmission{
		Challenge: "ch-2", Email: "bob@example.com", Name: "Bob", Password: "pw",
	})
	s.Require().NoError(err)
	s.Equal("https://hydra/next", out.RedirectTo)
}

func (s *ControllerSuite) TestSubmitSignup_UpstreamErrorReRendersWithMessage() {
	s.persons.EXPECT().RefreshCredential(s.ctx).Return(nil)
	s.persons.EXPECT().CreatePerson(s.ctx, "bob", "Bob", "pw").
		Return("", &upstream.Error{Service: "persons", Kind: upstream.Rejected, Status: 400, Message: "Person already exists"})
	s.rec.EXPECT().Decision(FlowSignup, DecisionRender)

	out, err := s.c.SubmitSignup(s.ctx, SignupSubmission{Challenge: "ch-2", Email: "bob", Name: "Bob", Password: "pw"})
	s.Require().NoError(err)
	s.Equal(&SignupPage{Challenge: "ch-2", Email: "bob", Name: "Bob", Error: "Person already exists"}, out.Page)
}

func (s *ControllerSuite) TestSubmitSignup_MissingFields() {
	_, err := s.c.SubmitSignup(s.ctx, SignupSubmission{Challenge: "ch-2", Email: "bob"})
	ve := s.requireValidation(err, FlowSignup)
	s.Equal("signup", ve.Page.Template())
}

// ---- consent ----

func (s *ControllerSuite) TestStartConsent_SkipAcceptsRequestedScopes() {
	s.hydra.EXPECT().GetConsentRequest(s.ctx, "c-1").Return(&hydra.ConsentRequest{
		Skip: true, Subject: "dcd:persons:alice", RequestedScope: []string{"openid", "profile"},
		Client: hydra.ClientInfo{ClientID: "third-party"},
	}, nil)
	s.hydra.EXPECT().AcceptConsentRequest(s.ctx, "c-1", hydra.AcceptConsent{
		GrantScope: []string{"openid", "profile"},
		Session: hydra.ConsentSession{IDToken: map[string]any{
			"id": "alice", "sub": "alice", "name": "alice", "given_name": "alice", "family_name": "", "profile": "",
		}},
	}).Return(completed("https://hydra/after-consent"), nil).Times(1)
	s.rec.EXPECT().Decision(FlowConsent, DecisionSkip)

	out, err := s.c.StartConsent(s.ctx, "c-1")
	s.Require().NoError(err)
	s.Equal("https://hydra/after-consent", out.RedirectTo)
}

func (s *ControllerSuite) TestStartConsent_FirstPartyBehavesLikeSkip() {
	s.hydra.EXPECT().GetConsentRequest(s.ctx, "c-1").Return(&hydra.ConsentRequest{
		Skip: false, Subject: "dcd:persons:alice", Client: hydra.ClientInfo{ClientID: "dcd-mobile"},
	}, nil)
	s.hydra.EXPECT().AcceptConsentRequest(s.ctx, "c-1", hydra.AcceptConsent{
		GrantScope: []string{},
		Session:    hydra.ConsentSession{IDToken: map[string]any{}},
	}).Return(completed("https://hydra/after-consent"), nil).Times(1)
	s.rec.EXPECT().Decision(FlowConsent, DecisionSkip)

	out, err := s.c.StartConsent(s.ctx, "c-1")
	s.Require().NoError(err)
	s.True(out.IsRedirect())
}

func (s *ControllerSuite) TestStartConsent_RendersWithCapability() {
	client := hydra.ClientInfo{ClientID: "third-party", ClientName: "Third Party"}
	s.hydra.EXPECT().GetConsentRequest(s.ctx, "c-1").Return(&hydra.ConsentRequest{
		Subject: "dcd:persons:alice", RequestedScope: []string{"openid", "dcd:things"}, Client: client,
	}, nil)
	s.caps.EXPECT().Issue("c-1", "dcd:persons:alice").Return("signed-token", time.Now().Add(time.Minute), nil)
	s.rec.EXPECT().Decision(FlowConsent, DecisionRender)

	out, err := s.c.StartConsent(s.ctx, "c-1")
	s.Require().NoError(err)
	s.Equal(&ConsentPage{
		Challenge:    "c-1",
		ConsentToken: "signed-token",
		User:         "alice",
		Client:       client,
		Scopes: []scopes.Descriptor{
			{ID: "openid", Name: "Identity", Description: "Who you are"},
			{ID: "dcd:things", Name: "dcd:things"},
		},
	}, out.Page)
}

func (s *ControllerSuite) TestStartConsent_MissingChallenge() {
	_, err := s.c.StartConsent(s.ctx, "")
	ve := s.requireValidation(err, FlowConsent)
	s.Nil(ve.Page)
}

func (s *ControllerSuite) TestSubmitConsent_DenyRejectsWithoutCapability() {
	s.hydra.EXPECT().RejectConsentRequest(s.ctx, "c-1", hydra.Reject{
		Error: "access_denied", ErrorDescription: "The resource owner denied the request",
	}).Return(completed("https://hydra/denied"), nil).Times(1)
	s.rec.EXPECT().Decision(FlowConsent, DecisionReject)

	out, err := s.c.SubmitConsent(s.ctx, ConsentSubmission{Challenge: "c-1", Submit: SubmitDenyAccess})
	s.Require().NoError(err)
	s.Equal("https://hydra/denied", out.RedirectTo)
}

func (s *ControllerSuite) TestSubmitConsent_AcceptUsesCapabilitySubject() {
	s.caps.EXPECT().Verify("signed-token", "c-1").
		Return(&jwt.Capability{Challenge: "c-1", Subject: "dcd:persons:alice"}, nil)
	s.hydra.EXPECT().AcceptConsentRequest(s.ctx, "c-1", hydra.AcceptConsent{
		GrantScope: []string{"email"},
		Session: hydra.ConsentSession{IDToken: map[string]any{
			"email": "alice", "email_verified": false,
		}},
		Remember:    true,
		RememberFor: 3600,
	}).Return(completed("https://hydra/granted"), nil).Times(1)
	s.rec.EXPECT().Decision(FlowConsent, DecisionAccept)

	out, err := s.c.SubmitConsent(s.ctx, ConsentSubmission{
		Challenge: "c-1", ConsentToken: "signed-token", Submit: "Allow access",
		GrantScope: ScopeList{"email"}, Remember: true,
	})
	s.Require().NoError(err)
	s.Equal("https://hydra/granted", out.RedirectTo)
}

func (s *ControllerSuite) TestSubmitConsent_NoScopesGrantsEmptyList() {
	s.caps.EXPECT().Verify("t", "c-1").Return(&jwt.Capability{Challenge: "c-1", Subject: "dcd:persons:alice"}, nil)
	s.hydra.EXPECT().AcceptConsentRequest(s.ctx, "c-1", gomock.Cond(func(x any) bool {
		b := x.(hydra.AcceptConsent)
		return b.GrantScope != nil && len(b.GrantScope) == 0 && len(b.Session.IDToken) == 0 && !b.Remember
	})).Return(completed("https://hydra/granted"), nil)
	s.rec.EXPECT().Decision(FlowConsent, DecisionAccept)

	_, err := s.c.SubmitConsent(s.ctx, ConsentSubmission{Challenge: "c-1", ConsentToken: "t"})
	s.Require().NoError(err)
}

func (s *ControllerSuite) TestSubmitConsent_InvalidCapabilityIsValidation() {
	s.caps.EXPECT().Verify("forged", "c-1").Return(nil, jwt.ErrChallengeMismatch)

	_, err := s.c.SubmitConsent(s.ctx, ConsentSubmission{Challenge: "c-1", ConsentToken: "forged"})
	ve := s.requireValidation(err, FlowConsent)
	s.Nil(ve.Page)
}

// ---- logout ----

func (s *ControllerSuite) TestStartLogout_AlwaysRenders() {
	s.hydra.EXPECT().GetLogoutRequest(s.ctx, "l-1").Return(&hydra.LogoutRequest{Subject: "dcd:persons:alice", RPInitiated: true}, nil)
	s.rec.EXPECT().Decision(FlowLogout, DecisionRender)

	out, err := s.c.StartLogout(s.ctx, "l-1")
	s.Require().NoError(err)
	s.Equal(&LogoutPage{Challenge: "l-1", User: "alice"}, out.Page)
}

func (s *ControllerSuite) TestSubmitLogout_NoRejectsAndRedirectsToFallback() {
	s.hydra.EXPECT().RejectLogoutRequest(s.ctx, "l-1").Return(completed("https://hydra/ignored"), nil)
	s.rec.EXPECT().Decision(FlowLogout, DecisionReject)

	out, err := s.c.SubmitLogout(s.ctx, LogoutSubmission{Challenge: "l-1", Submit: "No"})
	s.Require().NoError(err)
	s.Equal(DefaultLogoutFallbackURL, out.RedirectTo)
}

func (s *ControllerSuite) TestSubmitLogout_YesAccepts() {
	s.hydra.EXPECT().AcceptLogoutRequest(s.ctx, "l-1").Return(completed("https://hydra/logged-out"), nil)
	s.rec.EXPECT().Decision(FlowLogout, DecisionAccept)

	out, err := s.c.SubmitLogout(s.ctx, LogoutSubmission{Challenge: "l-1", Submit: "Yes"})
	s.Require().NoError(err)
	s.Equal("https://hydra/logged-out", out.RedirectTo)
}

func (s *ControllerSuite) TestSubmitLogout_ErrorPropagates() {
	boom := upstream.NewUnavailable("hydra", "PUT logout reject", errors.New("refused"))
	s.hydra.EXPECT().RejectLogoutRequest(s.ctx, "l-1").Return(nil, boom)

	_, err := s.c.SubmitLogout(s.ctx, LogoutSubmission{Challenge: "l-1", Submit: "No"})
	s.ErrorIs(err, boom)
}
