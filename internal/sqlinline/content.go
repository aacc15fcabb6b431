package sqlinline

const QCreateContentItems = `--sql 7e20e8c6-b39a-4570-8187-ebca292da36c
create table if not exists content_items (
  id uuid primary key default gen_random_uuid(),
  kind text not null,
  prompt text not null,
  status text not null,
  metadata jsonb not null default '{}'::jsonb,
  result jsonb not null default '{}'::jsonb,
  automation_task_id text,
  error text,
  created_at timestamptz not null default now(),
  updated_at timestamptz not null default now()
);
`

const QCreateContentItemsIndex = `--sql 65621303-1dab-434f-ae51-1fc59edad05d
create index if not exists content_items_created_at_idx on content_items (created_at desc);
`

const QInsertContentItem = `--sql 2f66cff9-e723-46bf-9b94-4766b9e34cda
insert into content_items (kind, prompt, status, metadata, result, automation_task_id, error)
values ($1, $2, $3, $4::jsonb, $5::jsonb, nullif($6, ''), nullif($7, ''))
returning id::text, kind, prompt, status, metadata, result,
  coalesce(automation_task_id, ''), coalesce(error, ''), created_at, updated_at;
`

const QGetContentItem = `--sql 1a30d061-e773-42df-b6ce-7d8e5acf0859
select id::text, kind, prompt, status, metadata, result,
  coalesce(automation_task_id, ''), coalesce(error, ''), created_at, updated_at
from content_items
where id = $1::uuid;
`

// QUpdateVideoStatus only touches video records still processing; zero rows
// means missing, immutable or already completed.
const QUpdateVideoStatus = `--sql b5dd909a-ea58-4657-83d2-f610e6e06bb7
update content_items
set status = $3,
    result = jsonb_set(coalesce(result, '{}'::jsonb), '{videoStatus}', to_jsonb($2::text), true),
    updated_at = now()
where id = $1::uuid
  and kind = 'video'
  and status = 'processing'
returning id::text, kind, prompt, status, metadata, result,
  coalesce(automation_task_id, ''), coalesce(error, ''), created_at, updated_at;
`

const QListRecentContentItems = `--sql 79fad23e-e985-4a10-9ab2-f297edba094f
select id::text, kind, prompt, status, metadata, result,
  coalesce(automation_task_id, ''), coalesce(error, ''), created_at, updated_at
from content_items
order by created_at desc
limit $1;
`

const QCreateContentItemsSQLite = `--sql 9102f4e9-8775-4930-ab69-909e8a2f9d0c
create table if not exists content_items (
  id text primary key,
  kind text not null,
  prompt text not null,
  status text not null,
  metadata text not null default '{}',
  result text not null default '{}',
  automation_task_id text not null default '',
  error text not null default '',
  created_at text not null,
  updated_at text not null
);
`

const QCreateContentItemsIndexSQLite = `--sql 773eef85-fb28-46fd-94ce-c11533c5107a
create index if not exists content_items_created_at_idx on content_items (created_at desc);
`

const QInsertContentItemSQLite = `--sql 91124965-cea1-417a-8b47-0af7e2a6ddf5
insert into content_items (id, kind, prompt, status, metadata, result, automation_task_id, error, created_at, updated_at)
values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`

const QGetContentItemSQLite = `--sql 264ee9dc-fd47-4a74-8388-28666e106a45
select id, kind, prompt, status, metadata, result, automation_task_id, error, created_at, updated_at
from content_items
where id = ?;
`

const QUpdateVideoStatusSQLite = `--sql 22124e34-3373-4df1-9c67-854df527d297
update content_items
set status = ?,
    result = json_set(coalesce(nullif(result, ''), '{}'), '$.videoStatus', ?),
    updated_at = ?
where id = ?
  and kind = 'video'
  and status = 'processing';
`

const QListRecentContentItemsSQLite = `--sql 1776fe72-4f34-49a5-a6a3-e345f9dca638
select id, kind, prompt, status, metadata, result, automation_task_id, error, created_at, updated_at
from content_items
order by created_at desc, rowid desc
limit ?;
`
