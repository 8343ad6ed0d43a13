// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package match ranks users by mutual relevance of their asks and offers.
//
// The Engine type implements a multi-signal matching algorithm:
//   - A forward pass matches the searcher's asks against other users' offers
//   - A backward pass matches the searcher's offers against other users' asks
//   - Topic expansion widens the searcher's topic set and boosts candidates
//     holding interests in related topics
//
// The three signals combine into a single score per candidate, with the full
// evidence trail attached to every result. Candidates surface only through
// statement matches; shared topics amplify a score but never create one.
//
// MatchKeyword supports free-text search: the keyword expands into synthetic
// ask statements whose forward-only score is blended with the candidate's
// general match score.
package match
