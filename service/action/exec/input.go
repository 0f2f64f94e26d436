package exec

// Input represents the commands run by an exec job
type Input struct {
	Workdir      string            `json:"workdir,omitempty"`      //directory where commands start
	Env          map[string]string `json:"env,omitempty"`          //environment variables set before commands run
	Commands     []string          `json:"commands,omitempty"`     //commands to run
	TimeoutMs    int               `json:"timeoutMs,omitempty"`    //max time per command
	AbortOnError *bool             `json:"abortOnError,omitempty"` //stop and fail when a command exits with non zero status
}

func (i *Input) abortOnError() bool {
	if i.AbortOnError == nil {
		return true
	}
	return *i.AbortOnError
}
