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


// Package config loads the system configuration from a YAML file.
//
// Values of the form ${VAR} or ${VAR:-default} are expanded from the
// environment before parsing, so secrets such as API keys never need to
// live in the file itself. Missing fields are filled with defaults that
// let a fresh checkout run entirely locally: TF-IDF embeddings, Badger
// under ./data, resumes under ./resumes.
package config
