package connection

import "fmt"

const (
	ConnLoopBreak uint8 = iota
	ConnLoopRetry
	ConnLoopContinue
	ConnInvalidMsgType
)

// ConnErr tells the caller what to do with a spectator
// connection after a failed read or write.
type ConnErr struct {
	code      uint8
	sessionId string
	desc      string
}

func NewConnErr(code uint8, sessionId string) ConnErr {
	return ConnErr{code: code, sessionId: sessionId}
}

func (c ConnErr) AddDesc(desc string) ConnErr {
	c.desc = desc
	return c
}

func (c ConnErr) Error() string {
	return fmt.Sprintf("spectator connection error - session: %s\tcode: %d\tdesc: %s", c.sessionId, c.code, c.desc)
}

func (c ConnErr) Code() uint8 {
	return c.code
}
