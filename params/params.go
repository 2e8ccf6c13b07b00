package params

import "time"

const (
	ServerBodyLimit             = 1048576 // 1 MiB
	ServerIdleTimeout           = 30 * time.Second
	ServerReadTimeout           = 10 * time.Second
	ServerWriteTimeout          = 10 * time.Second
	APIVersion                  = "1.0"
	OAuthStateKeyPrefix         = "o:"
	OAuthStateExpiration        = 10 * time.Minute // time allowed to complete an oauth round trip
	AuthTokenExpiration         = 24 * time.Hour   // bearer token lifetime
	InviteCodeLength            = 32               // length of generated invite codes
	InviteCodeHeader            = "x-invite-code"  // header carrying an invite code on registration attempts
	DefaultInviteCodeExpiration = 48 * time.Hour   // 172800 seconds
	DefaultAdminRole            = "admin"
	DefaultPageLimit            = 20
	MaxPageLimit                = 100
	JoinRateLimitMax            = 10          // join requests allowed per client per window
	JoinRateLimitWindow         = time.Minute // join rate limit window
	AnonymousEmailDomain        = "anonymous.invalid"
	HealthCheckServerAddr       = ":3001" // health check server address
)
