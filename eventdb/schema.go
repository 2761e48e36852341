// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

// create a table for engine events
const eventTableSchema = `
create table if not exists event (
	seq integer primary key autoincrement,
	kind text,
	participant blob(20),
	amount blob,
	points blob,
	eventTime decimal(20,0),
	premature integer,
	elapsed decimal(20,0)
);

CREATE INDEX if not exists kindIndex on event(kind);
CREATE INDEX if not exists participantIndex on event(participant);
CREATE INDEX if not exists eventTimeIndex on event(eventTime);
`
