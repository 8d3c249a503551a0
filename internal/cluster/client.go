package cluster

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
)

// SendRefresh manda una tarea de recálculo al refresher por TCP (JSON por
// conexión) y espera el resultado.
func SendRefresh(ctx context.Context, addr string, task *RefreshTask) (*RefreshResult, error) {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	enc := json.NewEncoder(conn)
	if err := enc.Encode(task); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bufio.NewReader(conn))
	var res RefreshResult
	if err := dec.Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}
