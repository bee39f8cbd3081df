package service

import "errors"

// ErrNoProfile means the congressperson has no registered Twitter account,
// so there is no handle to mention in the tweet.
var ErrNoProfile = errors.New("congressperson does not have a registered twitter account")
